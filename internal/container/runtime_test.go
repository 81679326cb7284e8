// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "docker on PATH but daemon down, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	const image = "jpegify-rsvg:latest"

	docker := newDockerRuntime(&mockExecutor{runnableCmds: map[string]bool{
		"docker image inspect " + image: true,
	}})
	assert.NoError(t, docker.ImageExists(image))

	podman := newPodmanRuntime(&mockExecutor{runnableCmds: map[string]bool{
		"podman image exists " + image: true,
	}})
	assert.NoError(t, podman.ImageExists(image))

	missing := newDockerRuntime(&mockExecutor{})
	err := missing.ImageExists(image)
	require.Error(t, err)
	assert.Contains(t, err.Error(), image)
}

func TestRun(t *testing.T) {
	t.Run("pipes stdin to stdout with image args", func(t *testing.T) {
		var gotArgs []string
		exec := &mockExecutor{
			runPipedFunc: func(name string, args []string, stdin io.Reader, stdout, _ io.Writer) error {
				assert.Equal(t, "podman", name)
				gotArgs = args
				data, _ := io.ReadAll(stdin)
				_, _ = stdout.Write([]byte("png:" + string(data)))
				return nil
			},
		}
		rt := newPodmanRuntime(exec)

		var out bytes.Buffer
		err := rt.Run(context.Background(), "rsvg:1", []string{"-f", "png"}, strings.NewReader("<svg/>"), &out)
		require.NoError(t, err)
		assert.Equal(t, "png:<svg/>", out.String())
		assert.Equal(t, []string{"run", "--rm", "-i", "--network=none", "rsvg:1", "-f", "png"}, gotArgs)
	})

	t.Run("failure includes container stderr", func(t *testing.T) {
		exec := &mockExecutor{
			runPipedFunc: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
				_, _ = stderr.Write([]byte("  parse error at line 3\n"))
				return errors.New("exit status 1")
			},
		}
		rt := newDockerRuntime(exec)

		err := rt.Run(context.Background(), "rsvg:1", nil, strings.NewReader(""), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Contains(t, err.Error(), "parse error at line 3")
	})
}

func TestTail(t *testing.T) {
	assert.Equal(t, "", tail("  \n", 10))
	assert.Equal(t, "abc", tail("abc", 10))
	assert.Equal(t, "cdef", tail("abcdef", 4))
}
