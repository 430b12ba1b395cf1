package game

import (
	"log"

	toneaudio "github.com/decker502/tcgame/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 护盾音效资源ID
const (
	SoundShieldUp   = "SOUND_SHIELD_UP"
	SoundShieldDown = "SOUND_SHIELD_DOWN"
)

// ShieldTones 护盾音效的合成参数
// 展开为上扬的扫频，收起为下沉的扫频
var ShieldTones = map[string]toneaudio.ToneSpec{
	SoundShieldUp:   {StartHz: 320, EndHz: 880, Duration: 0.2, Volume: 0.5},
	SoundShieldDown: {StartHz: 880, EndHz: 260, Duration: 0.2, Volume: 0.4},
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 提供便捷的播放接口
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（用于获取播放器）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PreloadShieldSounds 合成并缓存护盾音效
// 在场景初始化时调用，避免首次播放时的延迟
func (am *AudioManager) PreloadShieldSounds() {
	for soundID, spec := range ShieldTones {
		if err := am.resourceManager.RegisterTone(soundID, spec); err != nil {
			log.Printf("[AudioManager] Warning: %v", err)
			continue
		}
		am.getSoundPlayer(soundID)
	}
	log.Printf("[AudioManager] Preloaded %d shield sounds", len(ShieldTones))
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 参数：
//   - soundID: 音效资源ID（如 SoundShieldUp）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	// 检查音效是否启用
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false // 音效已禁用
		}
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}

	for _, player := range am.soundPlayers {
		player.SetVolume(am.getSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// getSoundPlayer 获取音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	player := am.resourceManager.GetAudioPlayer(soundID)
	if player == nil {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	am.soundPlayers[soundID] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
