package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/timeline-backend/internal/service/event"
)

func newEventsCmd(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, inspect and edit events",
	}

	cmd.AddCommand(newEventsListCmd(c))
	cmd.AddCommand(newEventsShowCmd(c))
	cmd.AddCommand(newEventsAddCmd(c))
	cmd.AddCommand(newEventsUpdateCmd(c))
	cmd.AddCommand(newEventsDeleteCmd(c))
	cmd.AddCommand(newEventsLinkCmd(c))
	return cmd
}

func newEventsListCmd(c *CLI) *cobra.Command {
	var in event.ListEventsInput

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			events, err := a.Events.ListEvents(ctx, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, map[string]any{
				"events": events,
				"total":  len(events),
			})
		},
	}

	cmd.Flags().StringVar(&in.Text, "q", "", "Case-insensitive substring search over name, description and tag")
	cmd.Flags().StringSliceVar(&in.Categories, "category", nil, "Only these categories (repeatable; empty value matches nothing)")
	cmd.Flags().StringSliceVar(&in.Countries, "country", nil, "Only these countries (repeatable; empty value matches nothing)")
	cmd.Flags().StringVar(&in.Start, "start", "", "Lower date bound YYYY-MM-DD")
	cmd.Flags().StringVar(&in.End, "end", "", "Upper date bound YYYY-MM-DD")
	return cmd
}

func newEventsShowCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tag>",
		Short: "Show one event with its resolved relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			detail, err := a.Events.GetEventDetail(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, detail)
		},
	}
}

func newEventsAddCmd(c *CLI) *cobra.Command {
	var in event.CreateEventInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			created, err := a.Events.CreateEvent(ctx, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, created)
		},
	}

	cmd.Flags().StringVar(&in.Category, "category", "", "Category (required)")
	cmd.Flags().StringVar(&in.Topic, "topic", "", "Topic (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&in.Country, "country", "", "Country")
	cmd.Flags().StringVar(&in.DateStart, "start", "", "Start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&in.DateEnd, "end", "", "End date YYYY-MM-DD; omit for an instantaneous event")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringArrayVar(&in.AffectedBy, "affected-by", nil, "Tag of an event that affected this one (repeatable)")
	cmd.Flags().StringArrayVar(&in.Affects, "affects", nil, "Tag of an event this one affects (repeatable)")
	return cmd
}

func newEventsUpdateCmd(c *CLI) *cobra.Command {
	var (
		category, topic, name, country, description string
		start, end                                  string
		affectedBy, affects                         []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of an event",
		Long:  "Update the given fields of an event. Pass --end \"\" to clear the end date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			flags := cmd.Flags()
			in := event.UpdateEventInput{ID: id}
			setString := func(flag string, v *string, dst **string) {
				if flags.Changed(flag) {
					*dst = v
				}
			}
			setString("category", &category, &in.Category)
			setString("topic", &topic, &in.Topic)
			setString("name", &name, &in.Name)
			setString("country", &country, &in.Country)
			setString("description", &description, &in.Description)
			setString("start", &start, &in.DateStart)
			setString("end", &end, &in.DateEnd)
			if flags.Changed("affected-by") {
				in.AffectedBy = &affectedBy
			}
			if flags.Changed("affects") {
				in.Affects = &affects
			}

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			updated, err := a.Events.UpdateEvent(ctx, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, updated)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&topic, "topic", "", "Topic")
	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&country, "country", "", "Country")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "End date YYYY-MM-DD, empty to clear")
	cmd.Flags().StringArrayVar(&affectedBy, "affected-by", nil, "Replace the affected_by list (repeatable)")
	cmd.Flags().StringArrayVar(&affects, "affects", nil, "Replace the affects list (repeatable)")
	return cmd
}

func newEventsDeleteCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event and every relation that names it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := a.Events.DeleteEvent(ctx, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, map[string]any{"deleted": id})
		},
	}
}

func newEventsLinkCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "link <tag> <affects|affected_by> <related-tag>",
		Short: "Add one relation edge between two events",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			in := event.LinkInput{Tag: args[0], Direction: args[1], RelatedTag: args[2]}
			if err := a.Events.LinkEvents(ctx, in); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, map[string]any{
				"tag":       in.Tag,
				"direction": in.Direction,
				"related":   in.RelatedTag,
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q: must be a positive integer", s)
	}
	return id, nil
}
