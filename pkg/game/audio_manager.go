package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音效ID
const (
	SoundMove  = "SOUND_MOVE"
	SoundGrab  = "SOUND_GRAB"
	SoundCoin  = "SOUND_COIN"
	SoundWin   = "SOUND_WIN"
	SoundLose  = "SOUND_LOSE"
	SoundClick = "SOUND_CLICK"
)

// SampleRate 音频采样率
const SampleRate = 48000

// toneSpec 合成音效描述：依次播放的音符频率和每个音符时长
type toneSpec struct {
	notes    []float64 // Hz
	noteTime float64   // 秒
}

// 音效表，全部由程序合成，不依赖外部音频文件
var toneTable = map[string]toneSpec{
	SoundMove:  {notes: []float64{330}, noteTime: 0.03},
	SoundClick: {notes: []float64{880}, noteTime: 0.03},
	SoundGrab:  {notes: []float64{220, 196}, noteTime: 0.08},
	SoundCoin:  {notes: []float64{988, 1319}, noteTime: 0.07},
	SoundWin:   {notes: []float64{523, 659, 784, 1047}, noteTime: 0.1},
	SoundLose:  {notes: []float64{392, 330, 262}, noteTime: 0.14},
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//
// 音效由表现层根据状态变化触发，爪子状态机本身不会调用。
// audioContext 为 nil 时（测试、无音频设备）所有播放请求被忽略。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文（可为 nil）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.audioContext == nil {
		return false
	}

	volume := 1.0
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}

	spec, ok := toneTable[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", soundID)
		return nil
	}

	pcm := synthesizeTone(SampleRate, spec.notes, spec.noteTime)
	player := am.audioContext.NewPlayerFromBytes(pcm)
	am.soundPlayers[soundID] = player
	return player
}

// synthesizeTone 合成 16 位小端立体声 PCM 数据
// 每个音符是带淡入淡出的正弦波，避免爆音
func synthesizeTone(sampleRate int, notes []float64, noteTime float64) []byte {
	samplesPerNote := int(float64(sampleRate) * noteTime)
	if samplesPerNote <= 0 || len(notes) == 0 {
		return nil
	}
	fade := samplesPerNote / 10
	if fade == 0 {
		fade = 1
	}

	buf := make([]byte, 0, samplesPerNote*len(notes)*4)
	frame := make([]byte, 4)
	for _, freq := range notes {
		for i := 0; i < samplesPerNote; i++ {
			env := 1.0
			if i < fade {
				env = float64(i) / float64(fade)
			} else if i > samplesPerNote-fade {
				env = float64(samplesPerNote-i) / float64(fade)
			}
			v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * env * 0.3
			sample := int16(v * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:2], uint16(sample))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(sample))
			buf = append(buf, frame...)
		}
	}
	return buf
}
