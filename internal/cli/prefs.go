package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailtray/tailtray/internal/prefs"
)

var prefsJSON bool

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the reconciled preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Long: `Change one preference. Boolean keys accept true/false, on/off, yes/no or 1/0.

Keys: ` + keyList(),
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func init() {
	prefsCmd.Flags().BoolVar(&prefsJSON, "json", false, "print the preferences as JSON")
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	set, err := newReconciler(newClient(settings)).Load(cmd.Context())
	if err != nil {
		return err
	}

	if prefsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	if set.LoginName != "" {
		fmt.Printf("  %s  %s\n\n", styleLabel.Render(fmt.Sprintf("%-22s", "Login")), styleValue.Render(set.LoginName))
	}
	for _, key := range prefs.Keys {
		v, err := set.Value(key)
		if err != nil {
			continue
		}
		fmt.Printf("  %s  %s\n", styleLabel.Render(fmt.Sprintf("%-22s", key.Label())), formatPrefValue(v))
	}
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	key := prefs.Key(args[0])
	if !key.Valid() {
		return fmt.Errorf("%w: %s (known: %s)", prefs.ErrUnknownKey, args[0], keyList())
	}
	value, err := parsePlainValue(key, args[1])
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := newReconciler(newClient(settings)).Apply(cmd.Context(), key, value); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(key.Label() + " updated"))
	return nil
}

// parsePlainValue converts command-line text into the value type key expects.
func parsePlainValue(key prefs.Key, raw string) (any, error) {
	if !key.IsBool() {
		return raw, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean for %s: %q", key, raw)
	}
	return b, nil
}

func formatPrefValue(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return styleSuccess.Render("on")
		}
		return styleHint.Render("off")
	case string:
		if v == "" {
			return styleHint.Render("(none)")
		}
		return styleValue.Render(v)
	}
	return fmt.Sprint(v)
}

func keyList() string {
	names := make([]string, len(prefs.Keys))
	for i, k := range prefs.Keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
