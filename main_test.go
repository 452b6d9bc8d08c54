package main

import (
	"strings"
	"testing"

	"github.com/planops/tm1-mcp-server/tools"
)

func TestServerIdentity(t *testing.T) {
	if ServerName != "tm1-mcp-server" {
		t.Errorf("ServerName = %q", ServerName)
	}
	if ServerVersion == "" {
		t.Error("ServerVersion must not be empty")
	}
}

func TestBuildInstructions_ListsEveryTool(t *testing.T) {
	instructions := buildInstructions()

	for _, spec := range tools.AllTools {
		if !strings.Contains(instructions, spec.Name) {
			t.Errorf("instructions do not mention tool %q", spec.Name)
		}
	}
	if !strings.Contains(instructions, "TM1_ADDRESS") {
		t.Error("instructions do not explain configuration")
	}
	if !strings.Contains(instructions, "Leaves") {
		t.Error("instructions do not explain the Leaves hierarchy rule")
	}
}
