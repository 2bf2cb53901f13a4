package commands

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"aonscraper/internal/scrapers/aon"
	"aonscraper/lib/htmlutil"
	"aonscraper/lib/serviceutil"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showLevel int

func init() {
	showSpellsCmd.Flags().IntVar(&showLevel, "level", 0, "Only list spells of this level.")

	showCmd.AddCommand(showSpellsCmd)
	showCmd.AddCommand(showSpellCmd)
	showCmd.AddCommand(showTraitsCmd)
	showCmd.AddCommand(showTraitCmd)
	rootCmd.AddCommand(showCmd)
}

var converter = md.NewConverter("", true, nil)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints records saved by a previous scrape.",
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

func parseId(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		serviceutil.Fatal("the id must be a number", err)
	}
	return id
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func actions(costs aon.ActionCosts) string {
	parts := make([]string, len(costs))
	for i, c := range costs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " or ")
}

var showSpellsCmd = &cobra.Command{
	Use:   "spells [--level n]",
	Short: "Lists the saved spells.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		spells, err := store.Spells(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list spells", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Name", "Level", "Actions", "Traditions", "Traits"})
		for _, s := range spells {
			if showLevel > 0 && s.Level != showLevel {
				continue
			}
			t.AppendRow(table.Row{
				s.Id,
				s.Name,
				s.Level,
				actions(s.NumberOfActions),
				strings.Join(s.Traditions, ", "),
				strings.Join(s.Traits, ", "),
			})
		}
		t.Render()
	},
}

var showSpellCmd = &cobra.Command{
	Use:   "spell <id>",
	Short: "Prints every field of one saved spell.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		s, err := store.Spell(cmd.Context(), parseId(args[0]))
		if err != nil {
			serviceutil.Fatal("failed to get spell", err)
		}

		save := optional(s.SavingThrow)
		if s.IsBasicSave {
			save = "basic " + save
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"Id", s.Id},
			{"Name", s.Name},
			{"Level", s.Level},
			{"Rarity", s.Rarity},
			{"Source", s.Source},
			{"Traits", strings.Join(s.Traits, ", ")},
			{"Traditions", strings.Join(s.Traditions, ", ")},
			{"Bloodlines", strings.Join(s.Bloodlines, ", ")},
			{"Deities", strings.Join(s.Deities, ", ")},
			{"Domains", strings.Join(s.Domains, ", ")},
			{"Actions", actions(s.NumberOfActions)},
			{"Components", strings.Join(s.Components, ", ")},
			{"Range", optional(s.Range)},
			{"Area", optional(s.Area)},
			{"Targets", optional(s.Targets)},
			{"Trigger", optional(s.Trigger)},
			{"Duration", optional(s.Duration)},
			{"Saving Throw", save},
			{"Summary", s.Summary},
		})
		t.Render()

		if s.Content == "" {
			return
		}
		content, err := htmlutil.Load(s.Content)
		if err != nil {
			serviceutil.Fatal("failed to parse spell content", err)
		}
		base, err := url.Parse(cfg.BaseUrl)
		if err != nil {
			serviceutil.Fatal("failed to parse base url", err)
		}
		anchors := htmlutil.GetAnchors(base, content.Find("a[href]"))
		if len(anchors) == 0 {
			return
		}
		links := newTable()
		links.AppendHeader(table.Row{"Link", "Url"})
		for _, a := range anchors {
			links.AppendRow(table.Row{a.Name, a.Url.String()})
		}
		links.Render()
	},
}

var showTraitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "Lists the saved traits.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		traits, err := store.Traits(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list traits", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Name", "Categories", "Described"})
		for _, trait := range traits {
			t.AppendRow(table.Row{
				trait.Id,
				trait.Name,
				strings.Join(trait.Categories, ", "),
				trait.Description != "",
			})
		}
		t.Render()
	},
}

var showTraitCmd = &cobra.Command{
	Use:   "trait <id>",
	Short: "Prints one saved trait with its description rendered as markdown.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		trait, err := store.Trait(cmd.Context(), parseId(args[0]))
		if err != nil {
			serviceutil.Fatal("failed to get trait", err)
		}

		description, err := converter.ConvertString(trait.Description)
		if err != nil {
			serviceutil.Fatal("failed to render description", err)
		}

		fmt.Printf("# %s (%d)\n\n", trait.Name, trait.Id)
		if len(trait.Categories) > 0 {
			fmt.Printf("categories: %s\n\n", strings.Join(trait.Categories, ", "))
		}
		fmt.Println(description)
	},
}
