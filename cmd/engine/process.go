package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/urfave/cli/v2"
)

func (s *srv) startProcess(cctx *cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	userID := cctx.String("user")
	if file := cctx.String("file"); file != "" {
		actions, err := readActions(file)
		if err != nil {
			return err
		}

		return printJSON(s.dispatcher.BatchProcessActions(s.ctx, userID, actions))
	}

	actionType := cctx.String("action")
	if actionType == "" {
		return fmt.Errorf("either --action or --file is required")
	}

	metadata, err := parseMetadata(cctx.Args().Slice())
	if err != nil {
		return err
	}

	return printJSON(s.dispatcher.ProcessAction(s.ctx, userID, actionType, metadata))
}

// parseMetadata decodes key=value arguments, e.g. event_category=music.
func parseMetadata(args []string) (model.ActionMetadata, error) {
	raw := map[string]any{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return model.ActionMetadata{}, fmt.Errorf("invalid metadata %q, expected key=value", arg)
		}
		raw[key] = value
	}

	var metadata model.ActionMetadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &metadata,
	})
	if err != nil {
		return model.ActionMetadata{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return model.ActionMetadata{}, err
	}

	return metadata, nil
}

func readActions(path string) ([]model.ActionRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var actions []model.ActionRequest
	if err := json.Unmarshal(b, &actions); err != nil {
		return nil, err
	}

	return actions, nil
}
