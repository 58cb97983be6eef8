// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the format decoders
// and the resample pipeline — conversions between the normalized float32
// domain every audio.Source speaks and the fixed-point PCM formats the
// wire formats and WriteWAV16 actually store on disk.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit PCM
// sample. Used by ResampleToMono16 to produce the []int16 it returns, and
// by anything else writing float32 samples out as 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}

// Int16ToFloat32 is the inverse of Float32ToInt16's scale: it normalizes a
// signed 16-bit PCM sample into the [-1, 1] range every audio.Source
// implementation (wav, mp3, aiff) converts its decoded PCM into.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
