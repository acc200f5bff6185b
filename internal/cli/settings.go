package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/launcher"
	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// Settings protocol action IDs.
const (
	actionOpenAdminConsole = "open_admin_console"
	actionReload           = "reload"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Settings protocol for desktop settings hubs",
	Long: `Machine-readable settings protocol.

  describe             print the settings schema as JSON
  set <key> <json>     change one setting; prints {"ok": bool, "message": str}
  action <id>          run an action; prints {"ok": bool, "message": str}`,
}

var settingsDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the settings schema as JSON",
	Args:  cobra.NoArgs,
	RunE:  runSettingsDescribe,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <json-value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

var settingsActionCmd = &cobra.Command{
	Use:   "action <id>",
	Short: "Run a settings action",
	Args:  cobra.ExactArgs(1),
	Run:   runSettingsAction,
}

func init() {
	settingsCmd.AddCommand(settingsDescribeCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsActionCmd)
}

// Schema is the settings description consumed by settings hubs.
type Schema struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Sections    []SchemaSection `json:"sections"`
	Actions     []SchemaAction  `json:"actions"`
}

// SchemaSection groups related items.
type SchemaSection struct {
	Title string       `json:"title"`
	Items []SchemaItem `json:"items"`
}

// SchemaItem is one setting. Type is "info", "toggle" or "text".
type SchemaItem struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

// SchemaAction is a button the hub may show.
type SchemaAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Style string `json:"style"`
}

// Response is the reply to set and action.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

var schemaSections = []struct {
	title string
	keys  []prefs.Key
}{
	{"Network", []prefs.Key{prefs.KeyAcceptDNS, prefs.KeyAcceptRoutes, prefs.KeyShieldsUp, prefs.KeyHostname}},
	{"Exit node & routes", []prefs.Key{prefs.KeyAdvertiseExitNode, prefs.KeyExitNodeAllowLAN, prefs.KeyAdvertiseRoutes}},
	{"Services", []prefs.Key{prefs.KeySSH, prefs.KeyWebClient}},
}

// describeSchema builds the schema for a preference set.
func describeSchema(set prefs.Set) Schema {
	schema := Schema{
		Title:       "Tailscale Settings",
		Description: "Basic Tailscale preferences. Use the Admin Console for advanced settings.",
		Sections: []SchemaSection{{
			Title: "Account",
			Items: []SchemaItem{{Type: "info", Key: "login_name", Label: "Login", Value: set.LoginName}},
		}},
		Actions: []SchemaAction{
			{ID: actionOpenAdminConsole, Label: "Open Admin Console", Style: "suggested"},
			{ID: actionReload, Label: "Reload Settings", Style: "standard"},
		},
	}

	for _, sec := range schemaSections {
		section := SchemaSection{Title: sec.title}
		for _, key := range sec.keys {
			v, err := set.Value(key)
			if err != nil {
				continue
			}
			typ := "text"
			if key.IsBool() {
				typ = "toggle"
			}
			section.Items = append(section.Items, SchemaItem{Type: typ, Key: string(key), Label: key.Label(), Value: v})
		}
		schema.Sections = append(schema.Sections, section)
	}
	return schema
}

// decodeValue parses a JSON-encoded protocol value into the type key expects.
func decodeValue(key prefs.Key, raw string) (any, error) {
	if key.IsBool() {
		var b bool
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("invalid boolean: %w", err)
		}
		return b, nil
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("invalid string: %w", err)
	}
	return s, nil
}

func runSettingsDescribe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	set, err := newReconciler(newClient(settings)).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get tailscale prefs: %s", tailscale.Diagnostic(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(describeSchema(set))
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	key := prefs.Key(args[0])
	if !key.Valid() {
		printResponse(false, "Unknown key: "+args[0])
		return
	}
	value, err := decodeValue(key, args[1])
	if err != nil {
		printResponse(false, err.Error())
		return
	}

	settings, err := loadSettings()
	if err != nil {
		printResponse(false, err.Error())
		return
	}
	if err := newReconciler(newClient(settings)).Apply(cmd.Context(), key, value); err != nil {
		printResponse(false, tailscale.Diagnostic(err))
		return
	}
	printResponse(true, "Updated "+key.Label())
}

func runSettingsAction(cmd *cobra.Command, args []string) {
	switch args[0] {
	case actionOpenAdminConsole:
		settings, err := loadSettings()
		if err != nil {
			printResponse(false, err.Error())
			return
		}
		if err := launcher.New().OpenURL(settings.AdminConsoleURL); err != nil {
			printResponse(false, "Failed to open: "+err.Error())
			return
		}
		printResponse(true, "Opened admin console")
	case actionReload:
		// The hub re-runs describe after a reload.
		printResponse(true, "Settings reloaded")
	default:
		printResponse(false, "Unknown action: "+args[0])
	}
}

func printResponse(ok bool, message string) {
	data, _ := json.Marshal(Response{OK: ok, Message: message})
	fmt.Println(string(data))
}
