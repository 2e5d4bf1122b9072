package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webmarcas/backend/internal/contract"
	"webmarcas/backend/internal/store"
)

type famousEntry struct {
	Mark   string `yaml:"mark"`
	Sector string `yaml:"sector"`
}

func openStore(root *rootOptions) (*store.Database, error) {
	cfg, err := root.load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Database.Path, cfg.Database.Silent)
}

func newFamousCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "famous",
		Short: "Manage admin-supplied famous marks",
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored famous marks with a YAML list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			entries, err := loadFamousEntries(file)
			if err != nil {
				return err
			}
			db, err := openStore(root)
			if err != nil {
				return err
			}
			defer db.Close()

			rows := make([]store.FamousMark, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, store.FamousMark{Mark: e.Mark, Sector: e.Sector})
			}
			if err := db.ReplaceFamousMarks(rows); err != nil {
				return err
			}
			stored, err := db.ListFamousMarks()
			if err != nil {
				return err
			}
			logrus.WithField("famous_marks", len(stored)).Info("famous marks imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d famous marks\n", len(stored))
			return nil
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "YAML list of {mark, sector} entries")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored famous marks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(root)
			if err != nil {
				return err
			}
			defer db.Close()
			rows, err := db.ListFamousMarks()
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row.Mark, row.Sector)
			}
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}

func loadFamousEntries(path string) ([]famousEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read famous marks: %w", err)
	}
	var entries []famousEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode famous marks: %w", err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Mark) == "" {
			return nil, fmt.Errorf("entry %d: mark is required", i+1)
		}
	}
	return entries, nil
}

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage contract templates",
	}

	var (
		name      string
		file      string
		isDefault bool
	)
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Create or replace a template by name from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" || file == "" {
				return errors.New("--name and --file are required")
			}
			body, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			if strings.TrimSpace(string(body)) == "" {
				return errors.New("template file is empty")
			}
			db, err := openStore(root)
			if err != nil {
				return err
			}
			defer db.Close()

			tpl := &store.ContractTemplate{Name: name, Body: string(body), IsDefault: isDefault}
			if err := db.UpsertTemplate(tpl); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"template_id": tpl.ID,
				"name":        tpl.Name,
				"unknown":     contract.Unknown(tpl.Body),
			}).Info("contract template imported")
			fmt.Fprintf(cmd.OutOrStdout(), "template %q stored with id %d\n", tpl.Name, tpl.ID)
			return nil
		},
	}
	importCmd.Flags().StringVar(&name, "name", "", "template name")
	importCmd.Flags().StringVar(&file, "file", "", "template file")
	importCmd.Flags().BoolVar(&isDefault, "default", false, "mark the template as the default")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(root)
			if err != nil {
				return err
			}
			defer db.Close()
			rows, err := db.ListTemplates()
			if err != nil {
				return err
			}
			for _, row := range rows {
				marker := ""
				if row.IsDefault {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s%s\n", row.ID, row.Name, marker)
			}
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
