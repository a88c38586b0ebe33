package main

import (
	"encoding/json"
	"fmt"
	"os"

	"fibertract/internal/adapt"
	fiberapi "fibertract/pkg/fibertract"
)

func loadSimulateRequestFromConfig(path string) (fiberapi.SimulateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fiberapi.SimulateRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fiberapi.SimulateRequest{}, err
	}

	var req fiberapi.SimulateRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["profile"]); ok {
		req.Profile = v
	}
	if v, ok := asString(raw["profile_path"]); ok {
		req.ProfilePath = v
	}
	if v, ok := asInt(raw["ticks"]); ok {
		req.Ticks = v
	}
	if v, ok := asUint64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["active_ticks"]); ok {
		req.ActiveTicks = v
	}
	if v, ok := asInt(raw["rest_ticks"]); ok {
		req.RestTicks = v
	}
	if v, ok := asUint8(raw["magnitude"]); ok {
		req.Magnitude = v
	}
	if v, ok := asInt(raw["stimulus"]); ok {
		req.Stimulus = int32(v)
	}

	if adaptMap, ok := raw["adaptation"].(map[string]any); ok {
		cfg := adapt.DefaultConfig()
		if v, ok := asUint8(adaptMap["myelination_rate"]); ok {
			cfg.MyelinationRate = v
		}
		if v, ok := asUint8(adaptMap["demyelination_rate"]); ok {
			cfg.DemyelinationRate = v
		}
		if v, ok := asUint8(adaptMap["jitter_improvement_rate"]); ok {
			cfg.JitterImprovementRate = v
		}
		if v, ok := asUint8(adaptMap["jitter_decay_rate"]); ok {
			cfg.JitterDecayRate = v
		}
		if v, ok := asUint8(adaptMap["fatigue_rate"]); ok {
			cfg.FatigueRate = v
		}
		if v, ok := asUint8(adaptMap["recovery_rate"]); ok {
			cfg.RecoveryRate = v
		}
		if v, ok := asUint8(adaptMap["strengthening_rate"]); ok {
			cfg.StrengtheningRate = v
		}
		if v, ok := asUint8(adaptMap["atrophy_rate"]); ok {
			cfg.AtrophyRate = v
		}
		if v, ok := asUint8(adaptMap["atrophy_delay"]); ok {
			cfg.AtrophyDelay = v
		}
		if v, ok := asUint8(adaptMap["idle_threshold"]); ok {
			cfg.IdleThreshold = v
		}
		req.Adaptation = &cfg
	}

	if rawChemicals, ok := raw["chemicals"].([]any); ok {
		for i, rawEvent := range rawChemicals {
			eventMap, ok := rawEvent.(map[string]any)
			if !ok {
				return fiberapi.SimulateRequest{}, fmt.Errorf("chemicals[%d]: expected object", i)
			}
			var spec fiberapi.ChemicalSpec
			if v, ok := asInt(eventMap["tick"]); ok {
				spec.Tick = v
			}
			if v, ok := asString(eventMap["name"]); ok {
				spec.Name = v
			}
			if v, ok := asUint8(eventMap["intensity"]); ok {
				spec.Intensity = v
			}
			if spec.Name == "" {
				return fiberapi.SimulateRequest{}, fmt.Errorf("chemicals[%d]: name is required", i)
			}
			req.Chemicals = append(req.Chemicals, spec)
		}
	}

	return req, nil
}

func loadOrDefaultSimulateRequest(configPath string) (fiberapi.SimulateRequest, error) {
	if configPath == "" {
		return fiberapi.SimulateRequest{}, nil
	}
	req, err := loadSimulateRequestFromConfig(configPath)
	if err != nil {
		return fiberapi.SimulateRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asUint8(v any) (uint8, bool) {
	n, ok := asInt(v)
	if !ok || n < 0 || n > 255 {
		return 0, false
	}
	return uint8(n), true
}

func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case float64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	default:
		return 0, false
	}
}
