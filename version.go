package typeb

// Version is the release of the typeb module, reported by the CLI and the servers.
const Version = "0.4.0"
