// pkg/service/setting/service.go
package setting

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/configdef"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/repository"
)

// SettingService 定义了配置服务的接口
type SettingService interface {
	LoadAllSettings(ctx context.Context) error
	Get(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	// GetLines 将配置值按行拆分，去掉空白行，用于词表类配置
	GetLines(key string) []string
	GetSiteConfig() map[string]string
	UpdateSettings(ctx context.Context, settingsToUpdate map[string]string) error
}

// settingService 是 SettingService 接口的实现
type settingService struct {
	repo          repository.SettingRepository
	cache         map[string]string
	mu            sync.RWMutex
	publicSetting map[string]bool
}

// NewSettingService 是 settingService 的构造函数
func NewSettingService(repo repository.SettingRepository) SettingService {
	publicKeys := make(map[string]bool)
	for _, def := range configdef.AllSettings {
		if def.IsPublic {
			publicKeys[def.Key.String()] = true
		}
	}
	log.Printf("Setting Service 初始化完成，自动识别到 %d 个公开配置项。", len(publicKeys))

	return &settingService{
		repo:          repo,
		cache:         make(map[string]string),
		publicSetting: publicKeys,
	}
}

// LoadAllSettings 从代码定义和数据库中加载所有配置项到内存缓存。
// 先补齐数据库中缺失的默认项，再整体加载，保证两边一致。
func (s *settingService) LoadAllSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	newCache := make(map[string]string)
	defaults := make([]*model.Setting, 0, len(configdef.AllSettings))
	for _, def := range configdef.AllSettings {
		newCache[def.Key.String()] = def.Value
		defaults = append(defaults, &model.Setting{
			ConfigKey: def.Key.String(),
			Value:     def.Value,
			Comment:   def.Comment,
		})
	}

	if err := s.repo.EnsureDefaults(ctx, defaults); err != nil {
		log.Printf("⚠️ 警告: 写入默认配置失败: %v。", err)
	}

	dbSettings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cache = newCache
		log.Printf("⚠️ 警告: 从数据库加载配置失败: %v。服务将使用代码中定义的默认配置。", err)
		return err
	}

	for _, dbSetting := range dbSettings {
		newCache[dbSetting.ConfigKey] = dbSetting.Value
	}

	s.cache = newCache

	log.Printf("所有站点配置已成功加载到缓存，共 %d 项。", len(s.cache))
	return nil
}

// UpdateSettings 更新一个或多个配置项
func (s *settingService) UpdateSettings(ctx context.Context, settingsToUpdate map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Update(ctx, settingsToUpdate); err != nil {
		return err
	}

	for key, value := range settingsToUpdate {
		s.cache[key] = value
	}

	log.Printf("成功更新 %d 个站点配置项。", len(settingsToUpdate))
	return nil
}

// Get 根据键获取配置值
func (s *settingService) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[key]
}

// GetBool 根据键获取布尔类型的配置值
func (s *settingService) GetBool(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	valueStr := strings.ToLower(s.cache[key])
	b, _ := strconv.ParseBool(valueStr)
	return b
}

// GetInt 根据键获取整型配置值，解析失败时返回 0
func (s *settingService) GetInt(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, _ := strconv.Atoi(strings.TrimSpace(s.cache[key]))
	return n
}

// GetLines 将配置值按行拆分并去除空白行
func (s *settingService) GetLines(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw := strings.ReplaceAll(s.cache[key], "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// GetSiteConfig 返回所有公开的站点配置
func (s *settingService) GetSiteConfig() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	safeConfig := make(map[string]string)
	for key, value := range s.cache {
		if s.publicSetting[key] {
			safeConfig[key] = value
		}
	}
	return safeConfig
}
