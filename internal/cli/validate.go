package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adforgehq/adforge/pkg/brief"
)

// newValidateCmd creates the "validate" command.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH",
		Short: "Parse and validate a campaign brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := brief.ParseFile(args[0])
			if err != nil {
				printError("Brief is invalid")
				return err
			}

			printSuccess("Brief %s is valid", b.CampaignID)
			printDetail("%d product(s): %s", len(b.Products), productIDs(b))
			if len(b.Localizations) > 0 {
				codes := make([]string, 0, len(b.Localizations))
				for code := range b.Localizations {
					codes = append(codes, code)
				}
				sort.Strings(codes)
				printDetail("%d localization(s): %s", len(codes), strings.Join(codes, ", "))
			}
			return nil
		},
	}
}

func productIDs(b *brief.CampaignBrief) string {
	ids := make([]string, len(b.Products))
	for i, p := range b.Products {
		ids[i] = p.ProductID
	}
	return strings.Join(ids, ", ")
}
