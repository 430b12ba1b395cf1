package game

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"
	"path/filepath"

	toneaudio "github.com/decker502/tcgame/internal/audio"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// GeneratedFrameSize 程序化生成的护盾精灵表单帧边长（像素）
const GeneratedFrameSize = 96

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for images and audio assets,
// ensuring that resources are loaded only once and reused throughout the game.
//
// Missing shield textures are replaced with a procedurally generated sheet,
// so gameplay code never has to deal with a missing visual.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	sheet := rm.LoadShieldSheet(config.DefaultShieldConfig())
type ResourceManager struct {
	imageCache   map[string]*ebiten.Image // Cache for loaded images: path -> Image
	audioCache   map[string]*audio.Player // Cache for synthesized sounds: sound ID -> Player
	audioContext *audio.Context           // Global audio context, nil disables audio
	assetRoot    string                   // Directory prefix for relative asset paths
	debugFace    text.Face                // Lazily created HUD font face
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context; nil is allowed (audio disabled, e.g. in tests).
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:   make(map[string]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
		assetRoot:    "assets",
	}
}

// SetAssetRoot 设置相对资源路径的根目录（默认 "assets"）
func (rm *ResourceManager) SetAssetRoot(root string) {
	rm.assetRoot = root
}

// resolvePath 把资源路径转换为磁盘路径
// 不带扩展名的路径（如 "Textures/Shield"）默认补全 ".png"
func (rm *ResourceManager) resolvePath(path string) string {
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if filepath.IsAbs(path) || rm.assetRoot == "" {
		return path
	}
	return filepath.Join(rm.assetRoot, path)
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Parameters:
//   - path: Resource path relative to the asset root (e.g., "Textures/Shield").
//
// Returns:
//   - A pointer to the loaded ebiten.Image.
//   - An error if the file cannot be opened or decoded.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	// Check if the image is already cached
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	fullPath := rm.resolvePath(path)

	// Open the image file
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", fullPath, err)
	}
	defer file.Close()

	// Decode the image
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", fullPath, err)
	}

	// Convert to Ebitengine image
	ebitenImg := ebiten.NewImageFromImage(img)

	// Store in cache
	rm.imageCache[path] = ebitenImg

	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// If the image has not been loaded yet, it returns nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadShieldSheet 加载护盾精灵表
//
// 贴图文件不存在或无法解码时，生成程序化精灵表并以同一路径缓存，
// 因此该方法总是返回可用的图像。
//
// 参数：
//   - cfg: 护盾配置（提供贴图路径和网格尺寸）
//
// 返回：
//   - *ebiten.Image: 护盾精灵表
func (rm *ResourceManager) LoadShieldSheet(cfg *config.ShieldConfig) *ebiten.Image {
	img, err := rm.LoadImage(cfg.Texture)
	if err == nil {
		return img
	}

	log.Printf("[ResourceManager] Warning: %v (using generated shield sheet)", err)
	sheet := utils.GenerateShieldSheet(cfg.FrameColumns, cfg.FrameRows, GeneratedFrameSize)
	rm.imageCache[cfg.Texture] = sheet
	return sheet
}

// RegisterTone 合成音效并注册为可播放的资源
//
// 音频上下文为 nil 时静默跳过（返回 nil），调用方无需区分。
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_SHIELD_UP"）
//   - spec: 合成参数
//
// 返回：
//   - error: 合成或创建播放器失败时返回错误
func (rm *ResourceManager) RegisterTone(soundID string, spec toneaudio.ToneSpec) error {
	if rm.audioContext == nil {
		return nil
	}
	if _, exists := rm.audioCache[soundID]; exists {
		return nil
	}

	stream, err := toneaudio.GenerateTone(rm.audioContext.SampleRate(), spec)
	if err != nil {
		return fmt.Errorf("failed to synthesize %s: %w", soundID, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create audio player for %s: %w", soundID, err)
	}

	rm.audioCache[soundID] = player
	log.Printf("[ResourceManager] Registered tone %s (%.0fHz -> %.0fHz, %.2fs)",
		soundID, spec.StartHz, spec.EndHz, spec.Duration)
	return nil
}

// GetAudioPlayer 获取已注册的音效播放器，未注册时返回 nil
func (rm *ResourceManager) GetAudioPlayer(soundID string) *audio.Player {
	return rm.audioCache[soundID]
}

// DebugFontFace 返回 HUD 使用的位图字体
func (rm *ResourceManager) DebugFontFace() text.Face {
	if rm.debugFace == nil {
		rm.debugFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return rm.debugFace
}
