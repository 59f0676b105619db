package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"streamable/internal/media"
)

// positionGrace bounds how long Play waits for the IPC reader after mpv exits.
const positionGrace = 2 * time.Second

// MPV implements the Player interface for mpv.
// Uses exec.Command with explicit args (no shell interpretation)
// and IPC via Unix socket at a randomized temp path.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv and returns the final playback position.
func (m *MPV) Play(item *media.Playable, startPos float64) (float64, error) {
	// Create randomized IPC socket path (prevents symlink attacks)
	socketDir, err := os.MkdirTemp("", "streamable-mpv-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	cmd := exec.Command("mpv", mpvArgs(item, socketPath, startPos)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting mpv: %w", err)
	}

	positions := make(chan float64, 1)
	go func() {
		positions <- trackPosition(socketPath)
	}()

	// mpv returns non-zero on user quit, which is normal
	_ = cmd.Wait()

	select {
	case pos := <-positions:
		return pos, nil
	case <-time.After(positionGrace):
		return 0, nil
	}
}

func mpvArgs(item *media.Playable, socketPath string, startPos float64) []string {
	args := []string{
		item.URL.String(),
		"--force-media-title=" + displayTitle(item),
		"--input-ipc-server=" + socketPath,
		"--really-quiet",
	}
	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", startPos))
	}
	return args
}

// trackPosition connects to mpv's IPC socket and follows time-pos until
// the connection closes.
func trackPosition(socketPath string) float64 {
	// Wait for socket to appear
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return 0
	}
	defer conn.Close()

	observe := map[string]interface{}{
		"command":    []interface{}{"observe_property", 1, "time-pos"},
		"request_id": 100,
	}
	data, _ := json.Marshal(observe)
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return 0
	}

	return readPosition(conn)
}

// readPosition consumes mpv IPC events and returns the last positive time-pos.
func readPosition(r io.Reader) float64 {
	var lastPos float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var event struct {
			Event string  `json:"event"`
			Name  string  `json:"name"`
			Data  float64 `json:"data"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		if event.Name == "time-pos" && event.Data > 0 {
			lastPos = event.Data
		}
	}
	return lastPos
}
