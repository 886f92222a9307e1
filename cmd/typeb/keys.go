package main

import (
	"fmt"

	"github.com/aretw0/typeb/internal/cli"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored key sheets",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored key sheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var keysShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a stored key sheet as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		sheet, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("key %q: %w", args[0], err)
		}
		data, err := sheet.Encode()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var keysSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Validate and store a key sheet built from a file and/or flags",
	Example: `  typeb keys save 1941-12-07 --switches 9-1,24,6-23 --plugboard NOKTYUXEQLHBRMPDICJASVWGZF --mode typeb
  typeb keys save monday --key-sheet monday.yaml
  typeb keys save tuesday --key monday --switches 2-5,17,11-31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, _ := newLogger(cmd)
		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		// --key copies an existing sheet as the starting point.
		sheet, err := cli.ResolveSheet(cmd.Context(), keyOptions(cmd), store)
		if err != nil {
			return err
		}
		sheet.Name = args[0]
		sheet.Notes, _ = cmd.Flags().GetString("notes")

		if _, err := sheet.Settings(); err != nil {
			return err
		}
		if err := keysheet.ValidateName(sheet.Name); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), sheet); err != nil {
			return err
		}
		logger.Info("key sheet saved", "name", sheet.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", sheet.Name)
		return nil
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored key sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	addKeyFlags(keysSaveCmd)
	keysSaveCmd.Flags().String("notes", "", "Free-text notes stored with the sheet")
	keysCmd.AddCommand(keysListCmd, keysShowCmd, keysSaveCmd, keysDeleteCmd)
	rootCmd.AddCommand(keysCmd)
}
