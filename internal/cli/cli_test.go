package cli

import (
	"encoding/json"
	"testing"

	"github.com/tailtray/tailtray/internal/prefs"
	"github.com/tailtray/tailtray/internal/tailscale"
)

func TestDescribeSchema(t *testing.T) {
	set := prefs.Set{
		AcceptDNS:         true,
		AdvertiseExitNode: true,
		Hostname:          "laptop",
		AdvertiseRoutes:   "10.0.0.0/24",
		LoginName:         "alice@example.com",
	}
	schema := describeSchema(set)

	if schema.Title != "Tailscale Settings" {
		t.Errorf("Title = %q", schema.Title)
	}
	if len(schema.Actions) != 2 || schema.Actions[0].ID != actionOpenAdminConsole || schema.Actions[1].ID != actionReload {
		t.Errorf("Actions = %+v", schema.Actions)
	}

	items := make(map[string]SchemaItem)
	for _, sec := range schema.Sections {
		for _, item := range sec.Items {
			if _, dup := items[item.Key]; dup {
				t.Errorf("key %s listed twice", item.Key)
			}
			items[item.Key] = item
		}
	}

	tests := []struct {
		key      string
		typ      string
		expected any
	}{
		{key: "login_name", typ: "info", expected: "alice@example.com"},
		{key: "accept_dns", typ: "toggle", expected: true},
		{key: "accept_routes", typ: "toggle", expected: false},
		{key: "advertise_exit_node", typ: "toggle", expected: true},
		{key: "hostname", typ: "text", expected: "laptop"},
		{key: "advertise_routes", typ: "text", expected: "10.0.0.0/24"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			item, ok := items[tt.key]
			if !ok {
				t.Fatalf("missing item %s", tt.key)
			}
			if item.Type != tt.typ || item.Value != tt.expected {
				t.Errorf("item = %+v, want type %s value %v", item, tt.typ, tt.expected)
			}
		})
	}

	// Every preference key is exposed.
	for _, k := range prefs.Keys {
		if _, ok := items[string(k)]; !ok {
			t.Errorf("key %s missing from schema", k)
		}
	}

	if _, err := json.Marshal(schema); err != nil {
		t.Errorf("schema does not marshal: %v", err)
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name     string
		key      prefs.Key
		raw      string
		expected any
		wantErr  bool
	}{
		{name: "bool true", key: prefs.KeyAcceptDNS, raw: "true", expected: true},
		{name: "bool false", key: prefs.KeyAdvertiseExitNode, raw: "false", expected: false},
		{name: "bool as string", key: prefs.KeyAcceptDNS, raw: `"true"`, wantErr: true},
		{name: "string", key: prefs.KeyHostname, raw: `"laptop"`, expected: "laptop"},
		{name: "bare string", key: prefs.KeyHostname, raw: "laptop", wantErr: true},
		{name: "routes", key: prefs.KeyAdvertiseRoutes, raw: `"10.0.0.0/24, 10.1.0.0/24"`, expected: "10.0.0.0/24, 10.1.0.0/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeValue(tt.key, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("decodeValue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParsePlainValue(t *testing.T) {
	tests := []struct {
		key      prefs.Key
		raw      string
		expected any
		wantErr  bool
	}{
		{key: prefs.KeyShieldsUp, raw: "on", expected: true},
		{key: prefs.KeyShieldsUp, raw: "No", expected: false},
		{key: prefs.KeyShieldsUp, raw: "1", expected: true},
		{key: prefs.KeyShieldsUp, raw: "maybe", wantErr: true},
		{key: prefs.KeyHostname, raw: "on", expected: "on"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key)+"="+tt.raw, func(t *testing.T) {
			got, err := parsePlainValue(tt.key, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePlainValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("parsePlainValue() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPlainPeerLine(t *testing.T) {
	p := tailscale.Peer{
		Node:   tailscale.Node{HostName: "nas", IPs: []string{"100.64.0.7", "fd7a::7"}},
		OS:     "linux",
		Online: true,
	}
	if got, want := plainPeerLine(p), "nas\t100.64.0.7\tlinux\tonline"; got != want {
		t.Errorf("plainPeerLine() = %q, want %q", got, want)
	}
}
