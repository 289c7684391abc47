package houdinimcp

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/houdinimcp/catalog"
	"github.com/viant/houdinimcp/config"
	"github.com/viant/houdinimcp/host"
	"github.com/viant/houdinimcp/protocol"
	"github.com/viant/houdinimcp/scene"
)

func freePort(t *testing.T) int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

func send(t *testing.T, endpoint string, commandType string, params map[string]any) *protocol.Response {
	conn, err := net.DialTimeout("tcp", endpoint, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, protocol.NewEncoder(conn, 0).Encode(protocol.NewCommand(commandType, params)))
	response, err := protocol.NewDecoder(conn, 0).DecodeResponse()
	require.NoError(t, err)
	return response
}

func TestStartStop(t *testing.T) {
	for _, dispatch := range []string{config.DispatchWorker, config.DispatchPoll} {
		cfg := &config.Host{Port: freePort(t), Dispatch: dispatch, PollMs: 10}
		require.NoError(t, Start(context.Background(), cfg), dispatch)
		assert.Equal(t, host.StateListening, State(), dispatch)
		assert.ErrorIs(t, Start(context.Background(), cfg), host.ErrAlreadyRunning, dispatch)

		response := send(t, cfg.Endpoint(), "create_node", map[string]any{"node_type": "geo", "name": "box1"})
		assert.True(t, response.IsOK(), response.Message)
		response = send(t, cfg.Endpoint(), "list_commands", nil)
		require.True(t, response.IsOK(), response.Message)
		assert.Len(t, response.Result.(map[string]any)["commands"], len(catalog.Houdini(false))+1)
		response = send(t, cfg.Endpoint(), "nonexistent_command", nil)
		assert.Equal(t, "Unknown command type: nonexistent_command", response.Message)

		require.NoError(t, Stop(), dispatch)
		assert.Equal(t, host.StateNotRunning, State(), dispatch)
		require.NoError(t, Stop(), dispatch)
	}
}

func TestStart_AddressInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	err = Start(context.Background(), &config.Host{Port: port})
	assert.ErrorIs(t, err, host.ErrAddressInUse)
	assert.Equal(t, host.StateNotRunning, State())
}

func TestNewPlugin_LoadsScene(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	graph := scene.New()
	_, err := graph.Create("/obj", "geo", "box1")
	require.NoError(t, err)
	URL := filepath.Join(t.TempDir(), "scene.yaml")
	_, err = scene.Save(ctx, fs, URL, graph)
	require.NoError(t, err)

	cfg := &config.Host{Port: freePort(t), Scene: URL}
	cfg.Init()
	plugin, err := NewPlugin(ctx, cfg)
	require.NoError(t, err)
	defer plugin.Close()
	assert.NotNil(t, plugin.Scene().Graph().Node("/obj/box1"))

	response := plugin.Dispatcher().Dispatch(ctx, protocol.NewCommand("get_scene_info", nil))
	require.True(t, response.IsOK(), response.Message)
	info := response.Result.(map[string]any)
	assert.Equal(t, URL, info["filepath"])
	assert.Equal(t, 5, info["node_count"])
}

func TestStop_ReleasesShell(t *testing.T) {
	cfg := &config.Host{Port: freePort(t), ExecuteCode: true}
	require.NoError(t, Start(context.Background(), cfg))

	response := send(t, cfg.Endpoint(), "execute_code", map[string]any{"code": "echo $$"})
	require.True(t, response.IsOK(), response.Message)
	output := response.Result.(map[string]any)["output"].(string)
	pid, err := strconv.Atoi(strings.TrimSpace(output))
	require.NoError(t, err)
	require.NoError(t, syscall.Kill(pid, 0), "shell runs while the server is up")

	require.NoError(t, Stop())
	assert.Eventually(t, func() bool { return syscall.Kill(pid, 0) != nil }, 3*time.Second, 10*time.Millisecond)
}
