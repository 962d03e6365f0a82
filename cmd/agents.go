package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/service"
)

var (
	platformURLFlag string
	pageFlag        int
	pageSizeFlag    int

	agentsCmd = &cobra.Command{
		Use:   "agents",
		Short: "Inspect agents on a running platform",
		Long:  longAgents,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	agentsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := service.NewClient(platformURLFlag)
			out, err := client.ListAgents(pageFlag, pageSizeFlag)

			if err != nil {
				return err
			}

			if out.Total == 0 {
				fmt.Println("No agents registered.")
				return nil
			}

			fmt.Printf("%d agent(s) registered (page %d):\n\n", out.Total, out.Page)

			for _, agent := range out.Agents {
				fmt.Printf("  %s [%s]\n", agent.Name, agent.Status)

				if agent.Description != "" {
					fmt.Printf("    %s\n", agent.Description)
				}

				if agent.A2AEndpoint != "" {
					fmt.Printf("    endpoint: %s\n", agent.A2AEndpoint)
				}
			}

			return nil
		},
	}

	agentsCardCmd = &cobra.Command{
		Use:   "card <name>",
		Short: "Show the A2A agent card for one agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := service.NewClient(platformURLFlag)
			card, err := client.GetAgentCard(args[0])

			if err != nil {
				log.Error("failed to fetch agent card", "agent", args[0], "error", err)
				return err
			}

			fmt.Println(card.String())
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(agentsCmd)
	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsCardCmd)

	agentsCmd.PersistentFlags().StringVarP(
		&platformURLFlag, "url", "u", "http://localhost:8000", "Base URL of the platform",
	)
	agentsListCmd.Flags().IntVar(&pageFlag, "page", 1, "Page to fetch")
	agentsListCmd.Flags().IntVar(&pageSizeFlag, "page-size", 10, "Agents per page")
}

var longAgents = `
Inspect agents on a running platform instance.

Examples:
  # List registered agents
  a2a-selfservice agents list

  # Show the discovery card for a single agent
  a2a-selfservice agents card research-assistant
`
