package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mcoot/playeradmin/internal/api/request"
)

const dateLayout = "2006-01-02"

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersCountCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersCreateCmd())
	cmd.AddCommand(newPlayersUpdateCmd())
	cmd.AddCommand(newPlayersDeleteCmd())

	return cmd
}

// filterFlags maps listing flags onto API query parameters.
// Only flags set on the command line are sent.
type filterFlags struct {
	name, title, race, profession string
	after, before                 string
	banned                        bool
	minExp, maxExp                int
	minLevel, maxLevel            int
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name substring")
	fs.StringVar(&f.title, "title", "", "Title substring")
	fs.StringVar(&f.race, "race", "", "Race (e.g. HUMAN, ELF)")
	fs.StringVar(&f.profession, "profession", "", "Profession (e.g. WARRIOR, DRUID)")
	fs.StringVar(&f.after, "after", "", "Born on or after (YYYY-MM-DD or epoch millis)")
	fs.StringVar(&f.before, "before", "", "Born on or before (YYYY-MM-DD or epoch millis)")
	fs.BoolVar(&f.banned, "banned", false, "Banned state")
	fs.IntVar(&f.minExp, "min-exp", 0, "Minimum experience")
	fs.IntVar(&f.maxExp, "max-exp", 0, "Maximum experience")
	fs.IntVar(&f.minLevel, "min-level", 0, "Minimum level")
	fs.IntVar(&f.maxLevel, "max-level", 0, "Maximum level")
}

func (f *filterFlags) query(fs *pflag.FlagSet) (url.Values, error) {
	q := url.Values{}
	setIf := func(flag, param, value string) {
		if fs.Changed(flag) {
			q.Set(param, value)
		}
	}

	setIf("name", "name", f.name)
	setIf("title", "title", f.title)
	setIf("race", "race", f.race)
	setIf("profession", "profession", f.profession)
	setIf("banned", "banned", strconv.FormatBool(f.banned))
	setIf("min-exp", "minExperience", strconv.Itoa(f.minExp))
	setIf("max-exp", "maxExperience", strconv.Itoa(f.maxExp))
	setIf("min-level", "minLevel", strconv.Itoa(f.minLevel))
	setIf("max-level", "maxLevel", strconv.Itoa(f.maxLevel))

	for flag, value := range map[string]string{"after": f.after, "before": f.before} {
		if !fs.Changed(flag) {
			continue
		}
		ms, err := parseDate(value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}
		q.Set(flag, strconv.FormatInt(ms, 10))
	}
	return q, nil
}

// parseDate accepts YYYY-MM-DD in local time or epoch milliseconds
func parseDate(value string) (int64, error) {
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q", value)
	}
	return t.UnixMilli(), nil
}

func newPlayersListCmd() *cobra.Command {
	var (
		filter         filterFlags
		order          string
		page, pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filter.query(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("order") {
				q.Set("order", order)
			}
			if cmd.Flags().Changed("page") {
				q.Set("pageNumber", strconv.Itoa(page))
			}
			if cmd.Flags().Changed("page-size") {
				q.Set("pageSize", strconv.Itoa(pageSize))
			}

			players, err := client.ListPlayers(cmd.Context(), q)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(players)
			return nil
		},
	}

	filter.register(cmd.Flags())
	cmd.Flags().StringVar(&order, "order", "ID", "Sort key: ID, NAME, EXPERIENCE, BIRTHDAY, LEVEL")
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 3, "Page size")

	return cmd
}

func newPlayersCountCmd() *cobra.Command {
	var filter filterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filter.query(cmd.Flags())
			if err != nil {
				return err
			}

			count, err := client.CountPlayers(cmd.Context(), q)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(CountResult{Count: count})
			return nil
		},
	}

	filter.register(cmd.Flags())
	return cmd
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.GetPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(p)
			return nil
		},
	}
}

// playerFlags maps field flags onto a request body.
// Only flags set on the command line are sent.
type playerFlags struct {
	name, title, race, profession, birthday string
	banned                                  bool
	experience                              int
}

func (f *playerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name (up to 12 characters)")
	fs.StringVar(&f.title, "title", "", "Title (up to 30 characters)")
	fs.StringVar(&f.race, "race", "", "Race (e.g. HUMAN, ELF)")
	fs.StringVar(&f.profession, "profession", "", "Profession (e.g. WARRIOR, DRUID)")
	fs.StringVar(&f.birthday, "birthday", "", "Birthday (YYYY-MM-DD or epoch millis)")
	fs.BoolVar(&f.banned, "banned", false, "Banned state")
	fs.IntVar(&f.experience, "experience", 0, "Experience points")
}

func (f *playerFlags) body(fs *pflag.FlagSet) (request.PlayerRequest, error) {
	var req request.PlayerRequest
	if fs.Changed("name") {
		req.Name = &f.name
	}
	if fs.Changed("title") {
		req.Title = &f.title
	}
	if fs.Changed("race") {
		req.Race = &f.race
	}
	if fs.Changed("profession") {
		req.Profession = &f.profession
	}
	if fs.Changed("birthday") {
		ms, err := parseDate(f.birthday)
		if err != nil {
			return req, fmt.Errorf("--birthday: %w", err)
		}
		req.Birthday = &ms
	}
	if fs.Changed("banned") {
		req.Banned = &f.banned
	}
	if fs.Changed("experience") {
		req.Experience = &f.experience
	}
	return req, nil
}

func newPlayersCreateCmd() *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			p, err := client.CreatePlayer(cmd.Context(), body)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(p)
			return nil
		},
	}

	fields.register(cmd.Flags())
	for _, name := range []string{"name", "title", "race", "profession", "birthday", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newPlayersUpdateCmd() *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update some fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			p, err := client.UpdatePlayer(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(p)
			return nil
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.DeletePlayer(cmd.Context(), args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Deleted player " + args[0])
			return nil
		},
	}
}
