package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
)

var aiModels = []model.AIModel{
	{Name: "Llama 3.2 1B", Size: "1B", MinVRAM: 2, MinRAM: 4, Performance: "Fast", Category: "Small"},
	{Name: "Llama 3.2 3B", Size: "3B", MinVRAM: 4, MinRAM: 8, Performance: "Fast", Category: "Small"},
	{Name: "Phi-3 Mini", Size: "3.8B", MinVRAM: 4, MinRAM: 8, Performance: "Fast", Category: "Small"},
	{Name: "Gemma 2B", Size: "2B", MinVRAM: 3, MinRAM: 6, Performance: "Fast", Category: "Small"},
	{Name: "Llama 3.1 8B", Size: "8B", MinVRAM: 6, MinRAM: 12, Performance: "Balanced", Category: "Medium"},
	{Name: "Mistral 7B", Size: "7B", MinVRAM: 6, MinRAM: 12, Performance: "Balanced", Category: "Medium"},
	{Name: "Gemma 7B", Size: "7B", MinVRAM: 6, MinRAM: 12, Performance: "Balanced", Category: "Medium"},
	{Name: "Llama 3.1 70B", Size: "70B", MinVRAM: 24, MinRAM: 48, Performance: "High Quality", Category: "Large"},
	{Name: "Mixtral 8x7B", Size: "47B", MinVRAM: 20, MinRAM: 40, Performance: "High Quality", Category: "Large"},
	{Name: "GPT-4 Vision", Size: "API", MinVRAM: 0, MinRAM: 4, Performance: "Cloud-based", Category: "API"},
}

// tiers are checked top to bottom; the first substring found wins.
var nvidiaVRAM = []struct {
	model string
	gb    int
}{
	{"4090", 24}, {"4080", 16}, {"4070", 12}, {"3090", 24}, {"3080", 10}, {"3070", 8}, {"3060", 12},
}

var amdVRAM = []struct {
	model string
	gb    int
}{
	{"7900", 20}, {"7800", 16}, {"6900", 16}, {"6800", 16},
}

// AIModels lists every model the estimator knows about.
func AIModels() []model.AIModel {
	return append([]model.AIModel(nil), aiModels...)
}

func DefaultSystemConfig() model.SystemConfig {
	return model.SystemConfig{CPU: "Unknown", GPU: "Unknown", RAM: 8, VRAM: 4, Storage: 256}
}

// EstimateVRAM guesses video memory from a GPU renderer string. ok is false
// when the renderer is not recognized.
func EstimateVRAM(renderer string) (gb int, ok bool) {
	for _, t := range nvidiaVRAM {
		if strings.Contains(renderer, t.model) {
			return t.gb, true
		}
	}
	if strings.Contains(renderer, "AMD") || strings.Contains(renderer, "Radeon") {
		for _, t := range amdVRAM {
			if strings.Contains(renderer, t.model) {
				return t.gb, true
			}
		}
		return 8, true
	}
	if strings.Contains(renderer, "Intel") {
		return 0, true
	}
	return 0, false
}

// ApplyProbe overlays whatever the probe detected onto base.
func ApplyProbe(base model.SystemConfig, p model.HardwareProbe) model.SystemConfig {
	cfg := base
	if p.Cores > 0 {
		cfg.CPU = fmt.Sprintf("%d-Core Processor", p.Cores)
	}
	if p.DeviceMemoryGB > 0 {
		cfg.RAM = p.DeviceMemoryGB
	}
	if p.Renderer != "" {
		cfg.GPU = p.Renderer
		if vram, ok := EstimateVRAM(p.Renderer); ok {
			cfg.VRAM = vram
		}
	}
	if p.StorageQuotaGB > 0 {
		cfg.Storage = p.StorageQuotaGB
	}
	return cfg
}

// CompatibilityScore weighs VRAM 40, RAM 30, GPU class 20 and storage 10.
func CompatibilityScore(cfg model.SystemConfig) int {
	score := 0

	switch {
	case cfg.VRAM >= 24:
		score += 40
	case cfg.VRAM >= 16:
		score += 35
	case cfg.VRAM >= 12:
		score += 30
	case cfg.VRAM >= 8:
		score += 25
	case cfg.VRAM >= 6:
		score += 15
	default:
		score += 8
	}

	switch {
	case cfg.RAM >= 64:
		score += 30
	case cfg.RAM >= 32:
		score += 25
	case cfg.RAM >= 16:
		score += 18
	default:
		score += 10
	}

	gpu := cfg.GPU
	switch {
	case strings.Contains(gpu, "4090") || strings.Contains(gpu, "4080"):
		score += 20
	case strings.Contains(gpu, "4070") || strings.Contains(gpu, "3090"):
		score += 18
	case strings.Contains(gpu, "3080") || strings.Contains(gpu, "3070"):
		score += 15
	case strings.Contains(gpu, "3060") || strings.Contains(gpu, "AMD"):
		score += 12
	default:
		score += 8
	}

	switch {
	case cfg.Storage >= 2000:
		score += 10
	case cfg.Storage >= 1000:
		score += 8
	case cfg.Storage >= 500:
		score += 6
	default:
		score += 4
	}

	return min(100, score)
}

func Rating(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Limited"
	}
}

// CompatibleModels keeps the models whose VRAM and RAM minimums are met.
func CompatibleModels(cfg model.SystemConfig) []model.AIModel {
	var out []model.AIModel
	for _, m := range aiModels {
		if m.MinVRAM <= cfg.VRAM && m.MinRAM <= cfg.RAM {
			out = append(out, m)
		}
	}
	return out
}

// curveY is the inverted parabola y = -0.04(x-50)^2 + 100, floored at zero.
func curveY(x float64) float64 {
	return math.Max(0, -0.04*math.Pow(x-50, 2)+100)
}

// Curve samples curveY on [0, 100] in steps of 2.
func Curve() []model.CurvePoint {
	points := make([]model.CurvePoint, 0, 51)
	for x := 0; x <= 100; x += 2 {
		points = append(points, model.CurvePoint{X: float64(x), Y: curveY(float64(x))})
	}
	return points
}

// Assess computes the full verdict for cfg.
func Assess(cfg model.SystemConfig) model.Compatibility {
	score := CompatibilityScore(cfg)
	return model.Compatibility{
		Config:     cfg,
		Score:      score,
		Rating:     Rating(score),
		Compatible: CompatibleModels(cfg),
		Curve:      Curve(),
		Position:   model.CurvePoint{X: float64(score), Y: curveY(float64(score))},
	}
}

// ChartOptions renders the curve and the user's position as ECharts options.
func ChartOptions(c model.Compatibility) map[string]any {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "System Compatibility",
			Subtitle: fmt.Sprintf("%d / 100 (%s)", c.Score, c.Rating),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "score", Min: 0, Max: 100}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: 100}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)

	curve := make([]opts.LineData, 0, len(c.Curve))
	for _, p := range c.Curve {
		curve = append(curve, opts.LineData{Value: []interface{}{p.X, p.Y}})
	}

	line.AddSeries("Compatibility", curve).
		SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	line.AddSeries("Your system", []opts.LineData{{
		Name:       "You",
		Value:      []interface{}{c.Position.X, c.Position.Y},
		SymbolSize: 14,
	}})

	line.Validate()
	return line.JSON()
}

// CompatibilityService estimates which local models a machine can run.
// A saved system configuration always wins over fresh detection.
type CompatibilityService struct {
	prefs *repository.PreferenceStore
}

func NewCompatibilityService(prefs *repository.PreferenceStore) *CompatibilityService {
	return &CompatibilityService{prefs: prefs}
}

func (s *CompatibilityService) Estimate(ctx context.Context, probe model.HardwareProbe) (model.Compatibility, error) {
	saved, found, err := s.prefs.SystemConfig(ctx)
	if err != nil {
		return model.Compatibility{}, err
	}
	if found {
		return Assess(saved), nil
	}
	return Assess(ApplyProbe(DefaultSystemConfig(), probe)), nil
}

// Save stores cfg as the machine's configuration.
func (s *CompatibilityService) Save(ctx context.Context, cfg model.SystemConfig) (model.Compatibility, error) {
	if cfg.RAM < 0 || cfg.VRAM < 0 || cfg.Storage < 0 {
		return model.Compatibility{}, fmt.Errorf("%w: memory sizes cannot be negative", ErrInvalidSetting)
	}
	if err := s.prefs.SetSystemConfig(ctx, cfg); err != nil {
		return model.Compatibility{}, err
	}
	return Assess(cfg), nil
}
