package main

import (
	"fmt"

	"github.com/aretw0/typeb/internal/cli"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encipher a message",
	Example: `  typeb encrypt --switches 9-1,24,6-23 --text "ATTACK AT DAWN"
  typeb encrypt --key 1941-12-07 --group 5 < message.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, domain.Encipher)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decipher a message",
	Example: `  typeb decrypt --switches 9-1,24,6-23 --plugboard NOKTYUXEQLHBRMPDICJASVWGZF --mode typeb \
      --text ZTXODNWKCCMAVNZXYWEETUQTCIMNYZOUXHBNY`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, domain.Decipher)
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		addKeyFlags(c)
		c.Flags().StringP("text", "t", "", "Message text (default: read stdin)")
		c.Flags().StringP("file", "f", "", "Read the message from a file")
		c.Flags().IntP("group", "g", 0, "Print output in groups of N characters, whitespace removed")
		rootCmd.AddCommand(c)
	}
}

func addKeyFlags(c *cobra.Command) {
	c.Flags().String("key-sheet", "", "YAML key sheet file")
	c.Flags().StringP("key", "k", "", "Name of a stored key sheet")
	c.Flags().StringP("switches", "s", "", "Switch settings in shorthand, e.g. 9-1,24,6-23")
	c.Flags().StringP("plugboard", "p", "", "26-letter plugboard permutation")
	c.Flags().String("mode", "", "Stepping rule: cascade or typeb")
	c.Flags().String("policy", "", "Non-letters: pass-through, reject or strip")
}

func keyOptions(c *cobra.Command) cli.KeyOptions {
	var o cli.KeyOptions
	o.SheetPath, _ = c.Flags().GetString("key-sheet")
	o.KeyName, _ = c.Flags().GetString("key")
	o.Switches, _ = c.Flags().GetString("switches")
	o.Plugboard, _ = c.Flags().GetString("plugboard")
	o.Mode, _ = c.Flags().GetString("mode")
	o.Policy, _ = c.Flags().GetString("policy")
	return o
}

func runCipher(cmd *cobra.Command, dir domain.Direction) error {
	logger, debug := newLogger(cmd)
	ctx := cmd.Context()

	opts := keyOptions(cmd)
	if opts.SheetPath == "" && opts.KeyName == "" && opts.Switches == "" {
		return fmt.Errorf("no key: pass --switches, --key or --key-sheet")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	sheet, err := cli.ResolveSheet(ctx, opts, store)
	if err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("text")
	path, _ := cmd.Flags().GetString("file")
	group, _ := cmd.Flags().GetInt("group")

	input, err := cli.ReadInput(text, path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	m, err := cli.NewMachine(sheet, logger, debug, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	var out string
	if dir == domain.Encipher {
		out, err = m.EncryptContext(ctx, input)
	} else {
		out, err = m.DecryptContext(ctx, input)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.Group(out, group))
	return nil
}
