package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "DEBUG", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "ERROR", wantDebug: false, wantInfo: false},
		{level: "", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.level, &buf)

			Debug.Print("debug line")
			Info.Print("info line")
			Error.Print("error line")

			out := buf.String()
			if strings.Contains(out, "debug line") != tt.wantDebug {
				t.Errorf("debug output = %v, want %v", strings.Contains(out, "debug line"), tt.wantDebug)
			}
			if strings.Contains(out, "info line") != tt.wantInfo {
				t.Errorf("info output = %v, want %v", strings.Contains(out, "info line"), tt.wantInfo)
			}
			if !strings.Contains(out, "error line") {
				t.Error("error output missing")
			}
		})
	}
	Setup("INFO", nil)
}
