package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"npm install", "npm install left-pad", "npm install {package}"},
		{"npm i alias", "npm i @types/node", "npm install {package}"},
		{"yarn add", "yarn add react-dom", "yarn add {package}"},
		{"pip install", "pip install requests", "pip install {package}"},
		{"go get", "go get github.com/spf13/cobra", "go get {package}"},
		{"git push", "git push origin feature/login", "git push {remote} {branch}"},
		{"git checkout", "git checkout main", "git checkout {branch}"},
		{"unix path", "cat /etc/hosts", "cat {path}"},
		{"port suffix", "curl localhost:3000", "curl {host}:{port}"},
		{"port word", "kill process on port 8080", "kill process on port {port}"},
		{"loopback", "ping 127.0.0.1", "ping {host}"},
		{"unchanged", "npm run build", "npm run build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCommand(tt.command))
		})
	}
}

func TestNormalizeCommandStable(t *testing.T) {
	// Different packages collapse to the same pattern.
	a := NormalizeCommand("npm install left-pad")
	b := NormalizeCommand("npm install right-pad")
	assert.Equal(t, a, b)
}
