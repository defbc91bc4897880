package app

import (
	"encoding/binary"
	"testing"

	"github.com/decker502/duckhunt/pkg/game"
)

func TestSynthesizeTone(t *testing.T) {
	tests := []struct {
		name       string
		tone       Tone
		wantFrames int
	}{
		{"正弦", Tone{From: 440, To: 440, Duration: 0.1}, 4800},
		{"方波扫频", Tone{From: 1000, To: 200, Duration: 0.05, Decay: 10, Square: true}, 2400},
		{"零时长", Tone{From: 440, To: 440, Duration: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := SynthesizeTone(tt.tone, SampleRate)
			if len(pcm) != tt.wantFrames*bytesPerFrame {
				t.Fatalf("got %d bytes, want %d", len(pcm), tt.wantFrames*bytesPerFrame)
			}

			nonZero := false
			for i := 0; i+bytesPerFrame <= len(pcm); i += bytesPerFrame {
				left := binary.LittleEndian.Uint16(pcm[i:])
				right := binary.LittleEndian.Uint16(pcm[i+2:])
				if left != right {
					t.Fatalf("frame %d: channels differ", i/bytesPerFrame)
				}
				if left != 0 {
					nonZero = true
				}
			}
			if tt.wantFrames > 0 && !nonZero {
				t.Error("tone is silent")
			}
		})
	}
}

func TestEverySoundHasATone(t *testing.T) {
	for _, id := range SoundIDs() {
		tone, ok := soundTones[id]
		if !ok {
			t.Errorf("sound %s has no tone", id)
			continue
		}
		if tone.Duration <= 0 || tone.From <= 0 || tone.To <= 0 {
			t.Errorf("sound %s has an invalid tone %+v", id, tone)
		}
	}
}

func TestAudioManagerWithoutContext(t *testing.T) {
	settings := game.NewSettingsManager(nil)
	am := NewAudioManager(nil, settings)

	if am.Play("SOUND_SHOT") {
		t.Error("playing without an audio context should fail")
	}

	settings.SetSoundEnabled(false)
	if am.Play("SOUND_SHOT") {
		t.Error("playing with sound disabled should fail")
	}

	am.SetSoundVolume(1.5)
	if am.GetSoundVolume() != 1.0 {
		t.Errorf("volume %v, want clamped 1.0", am.GetSoundVolume())
	}

	if NewAudioManager(nil, nil).GetSoundVolume() != game.DefaultSettings().SoundVolume {
		t.Error("volume without settings should use the default")
	}
}
