package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/3-lines-studio/prerender/internal/core"
)

// CommandParams returns a producer that runs command and reads a JSON array of
// parameter objects from its stdout. Non-string values are formatted with %v.
func CommandParams(command []string, dir string) core.ParamSource {
	return core.Producer(func(ctx context.Context) ([]core.Params, error) {
		if len(command) == 0 {
			return nil, fmt.Errorf("missing params command")
		}

		cmd := exec.CommandContext(ctx, command[0], command[1:]...)
		cmd.Dir = dir

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		out, err := cmd.Output()
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%w: %s", err, msg)
			}
			return nil, err
		}

		return DecodeParams(out)
	})
}

func DecodeParams(data []byte) ([]core.Params, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("params must be a JSON array of objects: %w", err)
	}

	params := make([]core.Params, 0, len(raw))
	for _, obj := range raw {
		p := make(core.Params, len(obj))
		for k, v := range obj {
			switch val := v.(type) {
			case nil:
			case string:
				p[k] = val
			default:
				p[k] = fmt.Sprint(val)
			}
		}
		params = append(params, p)
	}
	return params, nil
}
