package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/config"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/engine"
	"github.com/Zoomchatlandingpage/brasil-cultural-agency/internal/pricing"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the travel consultant from the terminal",
	Long: `Talk to the travel consultant from the terminal.

Each line you type is one customer message. The consultant classifies
your travel profile, asks for budget and dates, and presents a package.
Type "quit" or press Ctrl-D to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := newAPIClient(cfg)

		fmt.Println(colorize(colorCyan, engine.Welcome))

		scanner := bufio.NewScanner(os.Stdin)
		conversationID := ""
		for {
			fmt.Print(colorize(colorBold, "you> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				break
			}

			var resp engine.Response
			err := client.postJSON(cmd.Context(), "/api/chat/message", map[string]string{
				"message":         line,
				"conversation_id": conversationID,
			}, &resp)
			if err != nil {
				printError("%v", err)
				continue
			}
			conversationID = resp.ConversationID

			fmt.Println(colorize(colorCyan, resp.Message))
			if resp.Package != nil {
				printQuote(resp.Package)
			}
			if resp.SuggestEmailCapture {
				if email := promptEmail(scanner); email != "" {
					var lead map[string]int64
					err := client.postJSON(cmd.Context(), "/api/chat/create-lead", map[string]string{
						"conversation_id": conversationID,
						"email":           email,
					}, &lead)
					if err != nil {
						printError("saving contact: %v", err)
					} else {
						printSuccess("Thanks! A consultant will follow up at %s", email)
					}
				}
			}
		}
		return scanner.Err()
	},
}

func promptEmail(scanner *bufio.Scanner) string {
	fmt.Print(colorize(colorBold, "email (enter to skip)> "))
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func printQuote(q *pricing.Quote) {
	fmt.Printf("\n%s %s, %d days\n", colorize(colorBold, "Package:"), q.DestinationName, q.DurationDays)
	fmt.Printf("  Flight      $%d\n", q.FlightPrice)
	fmt.Printf("  Hotel       $%d\n", q.HotelPrice)
	fmt.Printf("  Experiences $%d\n", q.ExperiencePrice)
	fmt.Printf("  Transfers   $%d\n", q.TransferPrice)
	fmt.Printf("  %s $%d", colorize(colorBold, "Total"), q.TotalPrice)
	if q.Savings > 0 {
		fmt.Printf("  (you save $%d)", q.Savings)
	}
	fmt.Println()
	fmt.Println()
}

// --- leads ---

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List CRM leads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := newAPIClient(cfg)

		var leads []struct {
			ID              int64  `json:"id"`
			ProfileScore    int    `json:"profile_score"`
			InterestLevel   string `json:"interest_level"`
			EstimatedBudget int    `json:"estimated_budget"`
			TravelDates     string `json:"travel_dates"`
			Status          string `json:"status"`
		}
		path := fmt.Sprintf("/api/leads?limit=%d", limit)
		if err := client.getJSON(cmd.Context(), path, &leads); err != nil {
			return err
		}

		if len(leads) == 0 {
			fmt.Println("No leads yet.")
			return nil
		}
		for _, l := range leads {
			interest := l.InterestLevel
			switch interest {
			case "high":
				interest = colorize(colorGreen, interest)
			case "medium":
				interest = colorize(colorYellow, interest)
			}
			fmt.Printf("%s  score %3d  %s  budget $%d  %s  %s\n",
				colorize(colorCyan, fmt.Sprintf("#%d", l.ID)),
				l.ProfileScore, interest, l.EstimatedBudget, l.TravelDates, l.Status)
		}
		return nil
	},
}

func init() {
	leadsCmd.Flags().Int("limit", 20, "maximum number of leads to list")
}

// --- destinations ---

var destinationsCmd = &cobra.Command{
	Use:   "destinations",
	Short: "List the sellable destination catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := newAPIClient(cfg)

		var destinations []struct {
			ID            int64  `json:"id"`
			Name          string `json:"name"`
			BestMonths    string `json:"best_months"`
			IdealProfiles string `json:"ideal_profiles"`
			AirportCodes  string `json:"airport_codes"`
		}
		if err := client.getJSON(cmd.Context(), "/api/destinations", &destinations); err != nil {
			return err
		}

		for _, d := range destinations {
			fmt.Printf("%s %s\n", colorize(colorCyan, fmt.Sprintf("#%d", d.ID)), colorize(colorBold, d.Name))
			fmt.Printf("    profiles: %s  airports: %s  best: %s\n", d.IdealProfiles, d.AirportCodes, d.BestMonths)
		}
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
