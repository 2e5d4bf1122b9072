package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"webmarcas/backend/internal/contract"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		templatePath string
		contextPath  string
		outPath      string
		html         bool
		certify      bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a contract template with a transaction context",
		Long:  "Render fills the {{token}} placeholders of a template file from a YAML or JSON context file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if templatePath == "" || contextPath == "" {
				return errors.New("--template and --context are required")
			}
			tpl, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			ctx, err := loadContext(contextPath)
			if err != nil {
				return err
			}
			if !ctx.PaymentMethod.Valid() {
				logrus.Warn("context has no payment method; price tokens stay unfilled")
			}
			if unknown := contract.Unknown(string(tpl)); len(unknown) > 0 {
				logrus.WithField("tokens", unknown).Warn("template references unknown tokens")
			}

			body := contract.Render(string(tpl), ctx)
			output := body
			if html {
				output, err = contract.RenderHTML(body, contract.LayoutOptions{
					DocumentID:  uuid.NewString(),
					Signatories: contract.DefaultSignatories(ctx),
					Certify:     certify,
					IssuedAt:    time.Now(),
				})
				if err != nil {
					return err
				}
			}

			if outPath == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), output)
				return err
			}
			if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logrus.WithField("path", outPath).Info("contract written")
			return nil
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "template file")
	cmd.Flags().StringVar(&contextPath, "context", "", "context file (YAML or JSON)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&html, "html", false, "lay the contract out as HTML")
	cmd.Flags().BoolVar(&certify, "certify", false, "append the SHA-256 certification panel (with --html)")
	return cmd
}

func loadContext(path string) (contract.Context, error) {
	var ctx contract.Context
	raw, err := os.ReadFile(path)
	if err != nil {
		return ctx, fmt.Errorf("read context: %w", err)
	}
	if err := yaml.Unmarshal(raw, &ctx); err != nil {
		return ctx, fmt.Errorf("decode context: %w", err)
	}
	return ctx, nil
}
