package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// MaxImageWidth 上傳圖片的最大寬度，超過時等比例縮小
const MaxImageWidth = 1200

// NormalizeImage 解碼上傳檔 (JPEG/PNG/GIF)，必要時縮小並轉成 JPEG
func NormalizeImage(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if img.Bounds().Dx() > MaxImageWidth {
		img = resize.Resize(MaxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("NormalizeImage: %w", err)
	}
	return buf.Bytes(), nil
}
