package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/invopop/jsonschema"

	"tactica/round"
)

// settingsPatch 部分更新，未出现的字段保持不变
type settingsPatch struct {
	Timings          *round.Timings `json:"timings,omitempty"`
	Planner          *string        `json:"planner,omitempty"`
	StepCostFt       *int           `json:"step_cost_ft,omitempty"`
	AITimeoutSec     *float64       `json:"ai_timeout_sec,omitempty"`
	MaxInputsPerTick *int           `json:"max_inputs_per_tick,omitempty"`
}

func (p settingsPatch) apply(s Settings) Settings {
	if p.Timings != nil {
		s.Timings = *p.Timings
	}
	if p.Planner != nil {
		s.Planner = *p.Planner
	}
	if p.StepCostFt != nil {
		s.StepCostFt = *p.StepCostFt
	}
	if p.AITimeoutSec != nil {
		s.AITimeoutSec = *p.AITimeoutSec
	}
	if p.MaxInputsPerTick != nil {
		s.MaxInputsPerTick = *p.MaxInputsPerTick
	}
	return s
}

// HandleAdminConfig 遭遇参数的读取与热更新
// GET  /admin/config?encounter=main  返回当前参数
// POST /admin/config?encounter=main  以 JSON 载荷更新部分字段，下一 Tick 生效
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	id := encounterID(r)
	e, ok := GetEncounterManager().Get(id)
	if !ok {
		http.Error(w, "unknown encounter", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, e.Settings())
	case http.MethodPost:
		var patch settingsPatch
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&patch); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		next := patch.apply(e.Settings())
		if err := e.UpdateSettings(next); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		Log.Infof("config update queued: encounter=%s planner=%s step=%dft ai_timeout=%.2fs",
			id, next.Planner, next.StepCostFt, next.AITimeoutSec)
		writeJSON(w, http.StatusAccepted, map[string]any{"ok": true, "settings": next})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定遭遇的运行指标
// GET /metrics?encounter=main
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	id := encounterID(r)
	e, ok := GetEncounterManager().Get(id)
	if !ok {
		http.Error(w, "unknown encounter", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"encounter": id,
		"tick":      e.TickSeq(),
		"metrics":   e.Metrics().Snapshot(),
	})
}

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
)

// HandleSchema 线上消息的 JSON Schema
// GET /schema
func HandleSchema(w http.ResponseWriter, r *http.Request) {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{}
		schemas = map[string]*jsonschema.Schema{
			"input":    reflector.Reflect(new(InputMessage)),
			"state":    reflector.Reflect(new(StateMessage)),
			"grid":     reflector.Reflect(new(GridMessage)),
			"event":    reflector.Reflect(new(Event)),
			"settings": reflector.Reflect(new(Settings)),
		}
		schemas["input"].Title = "Tactica client input"
	})
	writeJSON(w, http.StatusOK, schemas)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
