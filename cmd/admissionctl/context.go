package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tuyensinh/admission-advisor/services/admission"
)

func newContextCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "context <query>",
		Short: "Print the intent and context block a chat message would produce",
		Long: `Print the classified intent and the context block the advisor would send to
the completion endpoint for a message. The completion endpoint is not called.`,
		Example: `  admissionctl context "FPT có bao nhiêu ngành"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			retriever := admission.NewRetriever(admission.NewGORMCatalog(store.GetDB()), opts.logger(cmd))
			block := retriever.GetAdmissionContext(cmd.Context(), query)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intent: %s\n", admission.ClassifyIntent(query))
			if block == "" {
				fmt.Fprintln(out, "(no matching admission data)")
				return nil
			}
			fmt.Fprintln(out, strings.TrimRight(block, "\n"))
			return nil
		},
	}
}
