package tokenrule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tokenrule/pkg/datastore"
)

func (a *app) newShowCmd() *cobra.Command {
	var storeDir, format, output string

	cmd := &cobra.Command{
		Use:     "show <node-id>",
		Short:   MsgShowShort,
		GroupID: "rules",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(storeDir, format)
			if err != nil {
				return err
			}
			rule, err := store.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "" {
				_, _ = fmt.Fprintln(out, renderer(out).RenderRule(rule))
				return nil
			}

			f, err := datastore.ParseFormat(output)
			if err != nil {
				return err
			}
			data, err := datastore.Encode(rule, f)
			if err != nil {
				return err
			}
			_, _ = out.Write(data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	storeFlags(cmd, &storeDir, &format)
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var storeDir, format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "rules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(storeDir, format)
			if err != nil {
				return err
			}
			list, err := store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, renderer(out).RenderRuleTable(list))
			return nil
		},
	}

	storeFlags(cmd, &storeDir, &format)
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	var storeDir, format string

	cmd := &cobra.Command{
		Use:     "delete <node-id>",
		Short:   MsgDeleteShort,
		GroupID: "rules",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(storeDir, format)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgRuleDeleted, args[0])
			return nil
		},
	}

	storeFlags(cmd, &storeDir, &format)
	return cmd
}
