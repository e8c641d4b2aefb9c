package server

import (
	"sort"
	"sync"

	"tactica/world"
)

// DefaultEncounterID 未指定遭遇时使用
const DefaultEncounterID = "main"

// EncounterManager 管理多个遭遇的生命周期
type EncounterManager struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
	cfg        Config
	statblocks world.Statblocks
}

var (
	defaultManager *EncounterManager
	once           sync.Once
)

// GetEncounterManager 单例管理器，初始使用 DefaultConfig
func GetEncounterManager() *EncounterManager {
	once.Do(func() {
		defaultManager = NewEncounterManager(DefaultConfig(), nil)
	})
	return defaultManager
}

// NewEncounterManager 独立的管理器（测试与进程内客户端用）
func NewEncounterManager(cfg Config, statblocks world.Statblocks) *EncounterManager {
	return &EncounterManager{
		encounters: make(map[string]*Encounter),
		cfg:        cfg,
		statblocks: statblocks,
	}
}

// Configure 设置之后新建遭遇所用的配置与属性卡
func (m *EncounterManager) Configure(cfg Config, statblocks world.Statblocks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.statblocks = statblocks
}

// Get 查找已存在的遭遇
func (m *EncounterManager) Get(id string) (*Encounter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.encounters[id]
	return e, ok
}

// GetOrCreate 获取或创建遭遇，并确保开始 Tick
func (m *EncounterManager) GetOrCreate(id string) (*Encounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.encounters[id]; ok {
		return e, nil
	}
	e, err := NewEncounter(id, m.cfg, m.statblocks, Log)
	if err != nil {
		return nil, err
	}
	m.encounters[id] = e
	e.StartTicker()
	return e, nil
}

// IDs 所有遭遇，按名称排序
func (m *EncounterManager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.encounters))
	for id := range m.encounters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StopAll 停止所有遭遇的 Tick
func (m *EncounterManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.encounters {
		e.Stop()
		delete(m.encounters, id)
	}
}
