// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeChunkSize caps how many samples WriteWAV16 converts and writes per
// call to w.Write, so encoding a long recording doesn't require holding
// the whole thing in a byte buffer at once.
const writeChunkSize = 8192

// WriteWAV16 writes samples to w as a canonical mono 16-bit PCM WAV file
// at sampleRate — the output format ResampleToMono16 feeds into when a
// caller wants a playable file rather than a raw []int16.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if err := writeWAVHeader(w, sampleRate, len(samples)); err != nil {
		return err
	}

	buf := make([]byte, 0, min(len(samples), writeChunkSize)*2)
	for i := 0; i < len(samples); i += writeChunkSize {
		chunk := samples[i:min(i+writeChunkSize, len(samples))]

		buf = buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func writeWAVHeader(w io.Writer, sampleRate int, sampleCount int) error {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	byteRate := uint32(sampleRate * channels * bitsPerSample / 8)
	blockAlign := uint16(channels * bitsPerSample / 8)
	dataSize := uint32(sampleCount * 2)

	header := make([]byte, headerSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	_, err := w.Write(header)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
