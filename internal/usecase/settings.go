package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const (
	KeyDisciplineWeights     = "discipline.weights"
	KeyDisciplineThresholds  = "discipline.thresholds"
	KeyNotificationTemplates = "notification.templates"
	KeyAbsentTime            = "notification.absent_time"
	KeyRejectWithoutRule     = "attendance.reject_without_rule"
)

var DefaultWeights = model.ScoreWeights{Present: 1, Late: -1, Absent: -3}

// Thresholds adalah batas pelanggaran untuk rekap bulanan.
type Thresholds struct {
	MinTotalLate   int     `json:"min_total_late"`
	MinTotalAbsent int     `json:"min_total_absent"`
	MinScore       float64 `json:"min_score"`
	Limit          int     `json:"limit"`
}

var DefaultThresholds = Thresholds{MinTotalLate: 3, MinTotalAbsent: 2, MinScore: -5, Limit: 10}

var DefaultTemplates = map[string]string{
	string(model.StatusLate):       "Assalamualaikum, {name} ({class}) tercatat TERLAMBAT pada {date} pukul {time}.",
	string(model.StatusAbsent):     "Assalamualaikum, {name} ({class}) tercatat ALPHA (tidak hadir tanpa keterangan) pada {date}.",
	string(model.StatusSick):       "{name} ({class}) tercatat {status} pada {date}. Semoga lekas sembuh.",
	string(model.StatusPermission): "{name} ({class}) tercatat {status} pada {date}.",
	"leave":                        "Perizinan {status} untuk {name} ({class}) tanggal {date} sudah kami terima.",
}

// SettingsProvider adalah konfigurasi key/value yang bisa diubah dari panel admin.
// Cache dimuat sekali dan dibuang oleh Set atau Invalidate.
type SettingsProvider interface {
	Get(ctx context.Context, key string, def interface{}) interface{}
	Set(ctx context.Context, key string, value interface{}, typ, group string) error
	String(ctx context.Context, key, def string) string
	Int(ctx context.Context, key string, def int) int
	Float(ctx context.Context, key string, def float64) float64
	Bool(ctx context.Context, key string, def bool) bool
	Decode(ctx context.Context, key string, dst interface{}) (bool, error)
	All(ctx context.Context) ([]model.Setting, error)
	Invalidate()
}

type settingsProvider struct {
	repo repository.SettingRepository
	log  *zap.Logger

	mu     sync.RWMutex
	cache  map[string]model.Setting
	loaded bool
}

func NewSettingsProvider(repo repository.SettingRepository, log *zap.Logger) SettingsProvider {
	return &settingsProvider{repo: repo, log: log}
}

func (p *settingsProvider) lookup(ctx context.Context, key string) (model.Setting, bool) {
	p.mu.RLock()
	if p.loaded {
		s, ok := p.cache[key]
		p.mu.RUnlock()
		return s, ok
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		settings, err := p.repo.All(ctx)
		if err != nil {
			p.log.Error("gagal memuat settings, memakai nilai default", zap.Error(err))
			return model.Setting{}, false
		}
		p.cache = make(map[string]model.Setting, len(settings))
		for _, s := range settings {
			p.cache[s.Key] = s
		}
		p.loaded = true
	}
	s, ok := p.cache[key]
	return s, ok
}

func (p *settingsProvider) Get(ctx context.Context, key string, def interface{}) interface{} {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return def
	}
	v, err := castSetting(s)
	if err != nil {
		p.log.Warn("nilai setting tidak sesuai tipe", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

func castSetting(s model.Setting) (interface{}, error) {
	switch s.Type {
	case model.SettingInt:
		return strconv.Atoi(s.Value)
	case model.SettingFloat:
		return strconv.ParseFloat(s.Value, 64)
	case model.SettingBool:
		return strconv.ParseBool(s.Value)
	case model.SettingJSON:
		var v interface{}
		err := sonic.UnmarshalString(s.Value, &v)
		return v, err
	default:
		return s.Value, nil
	}
}

func (p *settingsProvider) Set(ctx context.Context, key string, value interface{}, typ, group string) error {
	if key == "" {
		return fmt.Errorf("key setting kosong")
	}
	if typ == "" {
		typ = inferSettingType(value)
	}
	if group == "" {
		group = "general"
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case int, int64, float64, bool:
		raw = fmt.Sprint(v)
	default:
		encoded, err := sonic.MarshalString(v)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
		raw = encoded
	}
	// pastikan nilai bisa dibaca balik dengan tipe yang diminta
	if _, err := castSetting(model.Setting{Value: raw, Type: typ}); err != nil {
		return fmt.Errorf("nilai setting %s tidak cocok dengan tipe %s: %w", key, typ, err)
	}

	if err := p.repo.Upsert(ctx, &model.Setting{Key: key, Value: raw, Type: typ, Group: group}); err != nil {
		return err
	}
	p.Invalidate()
	return nil
}

func inferSettingType(value interface{}) string {
	switch value.(type) {
	case string:
		return model.SettingString
	case int, int64:
		return model.SettingInt
	case float64:
		return model.SettingFloat
	case bool:
		return model.SettingBool
	default:
		return model.SettingJSON
	}
}

func (p *settingsProvider) String(ctx context.Context, key, def string) string {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return def
	}
	return s.Value
}

func (p *settingsProvider) Int(ctx context.Context, key string, def int) int {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return def
	}
	if v, err := strconv.Atoi(s.Value); err == nil {
		return v
	}
	return def
}

func (p *settingsProvider) Float(ctx context.Context, key string, def float64) float64 {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseFloat(s.Value, 64); err == nil {
		return v
	}
	return def
}

func (p *settingsProvider) Bool(ctx context.Context, key string, def bool) bool {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseBool(s.Value); err == nil {
		return v
	}
	return def
}

// Decode mengisi dst dari nilai JSON. false bila key belum ada.
func (p *settingsProvider) Decode(ctx context.Context, key string, dst interface{}) (bool, error) {
	s, ok := p.lookup(ctx, key)
	if !ok {
		return false, nil
	}
	if err := sonic.UnmarshalString(s.Value, dst); err != nil {
		return true, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

func (p *settingsProvider) All(ctx context.Context) ([]model.Setting, error) {
	return p.repo.All(ctx)
}

func (p *settingsProvider) Invalidate() {
	p.mu.Lock()
	p.cache = nil
	p.loaded = false
	p.mu.Unlock()
}

// LoadScoreWeights membaca bobot skor terbaru. Field yang tidak diisi memakai default.
func LoadScoreWeights(ctx context.Context, s SettingsProvider) model.ScoreWeights {
	w := DefaultWeights
	if _, err := s.Decode(ctx, KeyDisciplineWeights, &w); err != nil {
		return DefaultWeights
	}
	return w
}

func LoadThresholds(ctx context.Context, s SettingsProvider) Thresholds {
	t := DefaultThresholds
	if _, err := s.Decode(ctx, KeyDisciplineThresholds, &t); err != nil {
		return DefaultThresholds
	}
	return t
}

func LoadTemplates(ctx context.Context, s SettingsProvider) map[string]string {
	templates := make(map[string]string, len(DefaultTemplates))
	for k, v := range DefaultTemplates {
		templates[k] = v
	}
	var custom map[string]string
	if found, err := s.Decode(ctx, KeyNotificationTemplates, &custom); found && err == nil {
		for k, v := range custom {
			if v != "" {
				templates[k] = v
			}
		}
	}
	return templates
}

// DefaultSettings dipakai seeder.
func DefaultSettings() []model.Setting {
	weights, _ := sonic.MarshalString(DefaultWeights)
	thresholds, _ := sonic.MarshalString(DefaultThresholds)
	templates, _ := sonic.MarshalString(DefaultTemplates)
	return []model.Setting{
		{Key: KeyDisciplineWeights, Value: weights, Type: model.SettingJSON, Group: "discipline"},
		{Key: KeyDisciplineThresholds, Value: thresholds, Type: model.SettingJSON, Group: "discipline"},
		{Key: KeyNotificationTemplates, Value: templates, Type: model.SettingJSON, Group: "notification"},
		{Key: KeyAbsentTime, Value: "09:00", Type: model.SettingString, Group: "notification"},
		{Key: KeyRejectWithoutRule, Value: "false", Type: model.SettingBool, Group: "attendance"},
	}
}
