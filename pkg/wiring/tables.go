package wiring

// The published wiring of the four Type B stepping switches, reconstructed in
// W. Freeman, G. Sullivan and F. Weierud, "Purple Revealed: Simulation and
// Computer-Aided Cryptanalysis of Angooki Taipu B", Cryptologia 27(1), 2003.

const (
	sixesInputs    = "AEIOUY"
	twentiesInputs = "BCDFGHJKLMNPQRSTVWXZ"
)

// Sixes is the wiring of the vowel switch.
var Sixes = MustFromRows("sixes", sixesInputs, []string{
	"EYAOIEYIUOEUIOAUYEAIYAYOU", // A
	"AIUIYAUYOUAOAEYOEIEAUIOYE", // E
	"IUOEAYOAEIOYEUEIUOIYAYUAO", // I
	"UEYAOUEOYEUIYAIYIAUOEOAEI", // O
	"OAEYUIAUIAYEOIUAOUYEOEIUY", // U
	"YOIUEOIEAYIAUYOEAYOUIUEIA", // Y
})

// TwentiesI is the wiring of twenties switch #1.
var TwentiesI = MustFromRows("twenties-1", twentiesInputs, []string{
	"HFVDXCTBVPZGSNPKJMQBLWTGR", // B
	"XGBRHNJZLKBFVPTSDQJCZSWKM", // C
	"RTQZKLHJNVTSMJCWGFLDPCXBF", // D
	"BVHFZRWTKLNCXDJBWRPFGQMSK", // F
	"MRSHQJLPZDCQTKFPVWZGMBNXL", // G
	"FBNTGXMRWZVXCSKNQDTHVJZLP", // H
	"CZXKWHQGJFLHNTSVXCRJBMGPD", // J
	"JSPXFDBWRMFTKHXRZVMKQGLCN", // K
	"QDTCMWVSBRKPLFGZRNXLJXBHV", // L
	"LKWPDQCMTGSRJZBTNXHMSVFDZ", // M
	"KWMVTPGQSJMKDCNQLZBNFHPRX", // N
	"TNDLSKFHGWQJRGLXMBCPDZQVH", // P
	"DPJGRMNKXCDVWBZLCHNQTLJFS", // Q
	"WQRBPSXDCTWMQLVJHPFRKNHZG", // R
	"SMKNJTZFHQRWPXHDBLGSWPVTC", // S
	"NXZMCVRLPHGDBWRFSJDTNKCQW", // T
	"GCFJVZKNFBHLGMQCPSWVXDRWT", // V
	"PHLQNFSVMXJBZRDGTKVWCFSMJ", // W
	"ZLCSBGDXQSPNHVWMFGKXRTDJB", // X
	"VJGWLBPCDNXZFQMHKTSZHRKNQ", // Z
})

// TwentiesII is the wiring of twenties switch #2.
var TwentiesII = MustFromRows("twenties-2", twentiesInputs, []string{
	"SPFHJGKZLMNCTXWZDGRKVBTXQ", // B
	"LHWNCVFBKPJDMTRDHSZNXGKQB", // C
	"BSGCQRDTJNRLSWPXFZQBHPMKV", // D
	"GCKZDJNMSWFMBPXCRLVHBZQTS", // F
	"VFTRLMXSGKWQVDBFCMGXPHNZJ", // G
	"XLBJFLQKCTZRDQJGPVWRSNHMF", // H
	"DKPWVXCRFZHSQLMNTBKGZRXJT", // J
	"CTSPRZLNQVBTLMHRGXFWJKGBD", // K
	"MXZSBKPWVGQJFHNLWQCVTLDCR", // L
	"KVRDPQTGBHXNJCSMZPSDLJFWG", // M
	"NGQKWBMDNLPZHVGWJFTMDXSRC", // N
	"WNVGZCVJHDSPKRLTXCBQNFZHM", // P
	"PZNMHTRQXFGWCNKSBJLPQDVLW", // Q
	"TJCBNDSVWXLHRFZPSHXZMQCGK", // R
	"HMJVTFZXRQTBGJVKLNDSCMWPN", // S
	"QWLXSPHFMJCGNZFJKRHTWVBDL", // T
	"ZBHLGNWCDBVKPSDQMTJFKWRVX", // V
	"FRDTKWBLZRMVXGQHNKMCFTJSP", // W
	"RQMFXHJPTSKXWBCVQDPJGSLNZ", // X
	"JDXQMSGHPCDFZKTBVWNLRCPFH", // Z
})

// TwentiesIII is the wiring of twenties switch #3.
var TwentiesIII = MustFromRows("twenties-3", twentiesInputs, []string{
	"JSCTPQFLGNXBDLKWRVMZNTHKQ", // B
	"XVNDWLJHRTKPFNQTBXSLZGMJC", // C
	"NRZPTGCFWLDVMHRSJBCKQMXGV", // D
	"DCPLFHSMVWSQPGTFZNRHKXTBJ", // F
	"ZPBFLKVWQDRLBMXCHJNPTFGSR", // G
	"BQXZDJMTSPGJWFPVQCHNMWLRK", // H
	"MKFHSPXKNGBRCVZQTWJCWSBLD", // J
	"HDMXQVGRPSNCKXJPWFBGRVZTL", // K
	"TBLWHRKGJMCSRQMHPDTFXBVNZ", // L
	"PXRCZWTPKBMFQSDNLKZJHDFVG", // M
	"VLHGKZBVDRPGXJSZFMQTSCNWT", // N
	"QFSKCMPBHVTNJCLXVGDRFZWHM", // P
	"KMQRJCDZBCWHTPFRGSLVBNJXH", // Q
	"LJDNMXQSCFZTHWVGNPKDVHRZB", // R
	"FNJMGNHQZXVDSRBLCTWSJKQDP", // S
	"WZTBXSRXFHJKLZNBDLVMGQCPS", // T
	"GTWSRFZCLKQWVBGKMHXQDJPFN", // V
	"RHKVBDLNMJFXZTCJSQGXLPKCW", // W
	"SWGQVBNJTQLZGKHDXZPWCRDMF", // X
	"CGVJNTWDXZHMNDWMKRFBPLSQX", // Z
})
