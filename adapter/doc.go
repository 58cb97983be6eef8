// SPDX-License-Identifier: EPL-2.0

// Package adapter bridges the pull-style decode-side audio.Source contract
// and byte-stream endpoints (PTYs, serial lines) into the push-style pipe
// package.
package adapter
