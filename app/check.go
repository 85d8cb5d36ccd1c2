package app

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/policy"
)

func init() { //nolint: gochecknoinits
	checkCmd.Flags().StringVar(&checkLoginName, "login", "", "login to resolve")
	checkCmd.Flags().BoolVar(&checkPasswordPrompt, "password-prompt", false, "ask for the password and verify it")
	_ = checkCmd.MarkFlagRequired("login")

	rootCmd.AddCommand(checkCmd)
}

var (
	checkLoginName      string
	checkPasswordPrompt bool

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Resolve a login against the configured directory and print the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := cfg.Directory.Settings()
			if err != nil {
				return err
			}

			var password string

			if checkPasswordPrompt {
				prompt := promptui.Prompt{Label: "Password", Mask: '*'}
				if password, err = prompt.Run(); err != nil {
					return err
				}
			}

			accessPolicy := policy.New(policy.WithSuperuserGroup(cfg.Directory.SuperuserGroup))

			return checkLogin(cmd.OutOrStdout(), directory.NewResolver(), accessPolicy, settings, checkLoginName, password)
		},
	}
)

// clientSource hands out the client for the configured strategy.
type clientSource interface {
	ClientFor(settings directory.Settings) directory.Client
}

// checkLogin resolves login and prints the profile with the flags accessPolicy derives from it.
// A rejected password still prints what the directory returned.
func checkLogin(
	w io.Writer,
	source clientSource,
	accessPolicy policy.Policy,
	settings directory.Settings,
	login, password string,
) error {
	profile, err := source.ClientFor(settings).Bind(login, password)

	var bindErr *directory.BindError
	if err != nil && !errors.As(err, &bindErr) {
		return err
	}

	if profile != nil {
		printProfile(w, profile, accessPolicy)
	}

	return err
}

func printProfile(w io.Writer, p *directory.Profile, accessPolicy policy.Policy) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Attribute", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	table.AppendBulk([][]string{
		{"dn", p.DistinguishedName},
		{"login", p.Login},
		{"cn", p.CommonName},
		{"given name", p.GivenName},
		{"surname", p.Surname},
		{"email", p.Email},
		{"department", p.Department},
		{"title", p.Title},
		{"manager", p.ManagerDN},
		{"office", p.Office()},
		{"location", strings.Join(nonEmpty(p.City, p.StateCode, p.CountryCode), ", ")},
		{"groups", strings.Join(p.Groups(), ", ")},
		{"authenticated", strconv.FormatBool(p.IsAuthenticated)},
		{"superuser", strconv.FormatBool(accessPolicy.Superuser(p))},
		{"staff", strconv.FormatBool(accessPolicy.Staff(p))},
		{"it", strconv.FormatBool(accessPolicy.IT(p))},
	})

	table.Render()
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]

	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}
