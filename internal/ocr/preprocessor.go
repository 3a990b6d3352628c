// Package ocr prepares receipt images before they are sent to the
// document-understanding provider. Thermal-paper receipts benefit from
// grayscale, contrast and sharpening; a failed enhancement falls back to the
// original bytes, never to an error.
package ocr

import (
	"bytes"
	"log"
	"os"
	"os/exec"
)

// Preprocessor enhances receipt photos via ImageMagick.
type Preprocessor struct{}

// NewPreprocessor creates an image preprocessor.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Enhance applies the receipt pipeline: resize, grayscale, normalize,
// contrast stretch, despeckle, sharpen. On any failure the original image
// bytes are returned unchanged.
func (p *Preprocessor) Enhance(imageData []byte) []byte {
	// Per-call temp files: concurrent scans must never share paths
	in, err := os.CreateTemp("", "receipt_in_*.jpg")
	if err != nil {
		return imageData
	}
	inputFile := in.Name()
	defer os.Remove(inputFile)

	if _, err := in.Write(imageData); err != nil {
		in.Close()
		return imageData
	}
	if err := in.Close(); err != nil {
		return imageData
	}

	out, err := os.CreateTemp("", "receipt_out_*.jpg")
	if err != nil {
		return imageData
	}
	outputFile := out.Name()
	out.Close()
	defer os.Remove(outputFile)

	args := []string{
		inputFile,
		"-resize", "2000x2000>",
		"-colorspace", "Gray",
		"-normalize",
		"-contrast-stretch", "2%x1%",
		"-despeckle",
		"-sharpen", "0x1",
		"-quality", "95",
		outputFile,
	}

	// 'magick' on ImageMagick 7, 'convert' on 6
	var cmd *exec.Cmd
	if _, err := exec.LookPath("magick"); err == nil {
		cmd = exec.Command("magick", args...)
	} else {
		cmd = exec.Command("convert", args...)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("[Preprocessor] ImageMagick failed: %v - %s", err, stderr.String())
		return imageData
	}

	processed, err := os.ReadFile(outputFile)
	if err != nil {
		return imageData
	}

	return processed
}

// Available reports whether ImageMagick is installed.
func Available() bool {
	if _, err := exec.LookPath("magick"); err == nil {
		return true
	}
	_, err := exec.LookPath("convert")
	return err == nil
}
