package automation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/almanac-cloud/almanac/api/rest/controller/definition"
	schema "github.com/almanac-cloud/almanac/pkg/definition"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	applyPaths  []string
	applyGlob   string
	applyServer string
	applyUser   string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply automation definitions via the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(applyUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}

		defs, err := collectDefinitions(applyPaths, applyGlob)
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No automation definitions found.")
			return nil
		}

		if err := sendApplyRequest(strings.TrimSuffix(applyServer, "/"), userID, defs); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d automation definition(s)\n", len(defs))
		return nil
	},
}

func init() {
	applyCmd.Flags().StringSliceVarP(&applyPaths, "path", "p", nil, "Paths to automation definition files or directories (default: current directory)")
	applyCmd.Flags().StringVar(&applyGlob, "glob", "", "Doublestar pattern to filter definition files (e.g. 'defs/**/*.yaml')")
	applyCmd.Flags().StringVar(&applyServer, "server", "http://localhost:8080", "Almanac server base URL")
	applyCmd.Flags().StringVarP(&applyUser, "user", "u", "", "Owner user ID for the applied automations")
	Cmd.AddCommand(applyCmd)
}

func collectDefinitions(paths []string, glob string) ([]schema.Definition, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var defs []schema.Definition
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			if err := filepath.WalkDir(p, func(path string, d os.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if d.IsDir() {
					return nil
				}
				if !isYAML(path) {
					return nil
				}
				ok, err := matchGlob(glob, path)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				return appendDefinitions(path, &defs)
			}); err != nil {
				return nil, err
			}
		} else {
			if !isYAML(p) {
				return nil, fmt.Errorf("%s is not a YAML file", p)
			}
			if err := appendDefinitions(p, &defs); err != nil {
				return nil, err
			}
		}
	}
	return defs, nil
}

func matchGlob(pattern, path string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	return doublestar.PathMatch(pattern, filepath.ToSlash(path))
}

func appendDefinitions(path string, defs *[]schema.Definition) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var def schema.Definition
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		if isBlankDefinition(&def) {
			continue
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		*defs = append(*defs, def)
	}

	return nil
}

func sendApplyRequest(server string, userID uuid.UUID, defs []schema.Definition) error {
	reqBody := definition.ApplyRequest{UserID: userID, Definitions: defs}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(server+"/v1/definitions/apply", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("apply failed: %s", strings.TrimSpace(string(body)))
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isBlankDefinition(def *schema.Definition) bool {
	if def == nil {
		return true
	}
	if strings.TrimSpace(def.Metadata.Name) != "" {
		return false
	}
	return def.APIVersion == "" && def.Kind == ""
}
