package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2ctl/internal/catalog"
	"github.com/imamik/ec2ctl/internal/cmdlet"
)

// operationSummary is one row of the operations listing.
type operationSummary struct {
	Name      string `json:"Name"`
	Group     string `json:"Group"`
	Impact    string `json:"Impact"`
	Paginated bool   `json:"Paginated,omitempty"`
	Summary   string `json:"Summary"`
}

// operations returns the command listing the catalog.
func (a *app) operations() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List the available operations with their impact level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []operationSummary
			for _, op := range catalog.Operations() {
				info := op.Info()
				if group != "" && info.Group != group {
					continue
				}
				rows = append(rows, operationSummary{
					Name:      info.Name,
					Group:     info.Group,
					Impact:    info.Impact.String(),
					Paginated: info.Paginated,
					Summary:   info.Short,
				})
			}
			return a.env.Sink.Emit(cmd.Context(), cmdlet.Success(rows, nil))
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Only list operations of this resource family")
	_ = cmd.RegisterFlagCompletionFunc("group", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var ids []string
		for _, g := range catalog.Groups() {
			ids = append(ids, g.ID)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
