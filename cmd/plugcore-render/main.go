// Command plugcore-render runs a test signal through a gain processor and
// writes the result to a WAV file. It exercises the full engine offline:
// sample-accurate automation, block splitting and parameter smoothing, with
// no plugin host involved.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/justyntemme/plugcore/pkg/dsp/gain"
	"github.com/justyntemme/plugcore/pkg/framework/event"
	"github.com/justyntemme/plugcore/pkg/framework/param"
	"github.com/justyntemme/plugcore/pkg/framework/plugin"
	"github.com/justyntemme/plugcore/pkg/framework/process"
)

const numChannels = 2

func main() {
	freq := flag.Float64("freq", 440, "Test tone frequency in Hz")
	duration := flag.Float64("duration", 2.0, "Render duration in seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	blockSize := flag.Int("block-size", 128, "Processing block size in samples")
	gainStart := flag.Float64("gain-start", -24, "Gain automation start in dB")
	gainEnd := flag.Float64("gain-end", 0, "Gain automation end in dB")
	smoothingMs := flag.Float64("smoothing", 10, "Gain smoothing time in milliseconds")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	if err := run(*freq, *duration, *sampleRate, *blockSize, *gainStart, *gainEnd, *smoothingMs, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(freq, duration float64, sampleRate, blockSize int, gainStart, gainEnd, smoothingMs float64, output string) error {
	if duration <= 0 || sampleRate <= 0 || blockSize <= 0 {
		return fmt.Errorf("duration, sample rate and block size must be positive")
	}

	proc := plugin.NewSimpleProcessor(
		plugin.Info{
			ID:       "com.plugcore.tools.render",
			Name:     "Render Gain",
			Version:  "1.0.0",
			Vendor:   "plugcore",
			Category: "Fx",
		},
		nil,
		processGain,
	)
	err := proc.Parameters().Add(
		param.New("gain", "Gain").
			Linear(-80, 12).
			Default(float32(gainStart)).
			Unit("dB").
			Smoothing(param.LinearSmoothing, float32(smoothingMs)).
			Build(),
	)
	if err != nil {
		return err
	}
	if err := proc.Initialize(float64(sampleRate), blockSize); err != nil {
		return err
	}
	if err := proc.SetActive(true); err != nil {
		return err
	}

	totalFrames := int(float64(sampleRate) * duration)
	if totalFrames < 1 {
		totalFrames = 1
	}

	input := make([][]float32, numChannels)
	outputCh := make([][]float32, numChannels)
	for ch := 0; ch < numChannels; ch++ {
		input[ch] = make([]float32, blockSize)
		outputCh[ch] = make([]float32, blockSize)
	}
	buf := process.NewBuffer()
	queue := event.NewQueue()

	samples := make([]float32, 0, totalFrames*numChannels)
	phaseStep := 2 * math.Pi * freq / float64(sampleRate)
	var phase float64

	fmt.Printf("Rendering %.2fs tone at %.1f Hz, gain %.1f dB -> %.1f dB at %d Hz...\n",
		duration, freq, gainStart, gainEnd, sampleRate)

	for frames := 0; frames < totalFrames; frames += blockSize {
		n := blockSize
		if frames+n > totalFrames {
			n = totalFrames - frames
		}

		for i := 0; i < n; i++ {
			s := float32(math.Sin(phase))
			phase += phaseStep
			for ch := 0; ch < numChannels; ch++ {
				input[ch][i] = s
			}
		}
		buf.Bind(input, outputCh, n)

		// One automation point per block, interpolating between the start
		// and end gain across the whole render.
		progress := float64(frames) / float64(totalFrames)
		db := gainStart + (gainEnd-gainStart)*progress
		queue.Push(event.Event{
			ParamID: "gain",
			Value:   float32(db),
			Kind:    event.Automation,
		})
		proc.Process(buf, queue)

		for i := 0; i < n; i++ {
			for ch := 0; ch < numChannels; ch++ {
				samples = append(samples, outputCh[ch][i])
			}
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, numChannels, 1)
	defer encoder.Close()

	if err := encoder.Write(&audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numChannels,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}); err != nil {
		return fmt.Errorf("writing WAV: %w", err)
	}

	fmt.Printf("Wrote %s (%d frames)\n", output, totalFrames)
	return nil
}

func processGain(ctx *process.Context, bl process.Block) {
	sm := ctx.Param("gain").Smoother()
	db := ctx.WorkBuffer(bl.Samples())
	sm.NextBlock(db)

	bl.EachChannel(func(ch int, in, out []float32) {
		gain.ApplyRampDb(in, out, db)
	})
}
