package photo

import "fmt"

type PromptType string

const (
	PromptPhoto      PromptType = "photo"
	PromptSensory    PromptType = "sensory"
	PromptBreathing  PromptType = "breathing"
	PromptReflection PromptType = "reflection"
)

func (t PromptType) Valid() bool {
	switch t {
	case PromptPhoto, PromptSensory, PromptBreathing, PromptReflection:
		return true
	}
	return false
}

// Photo снимок, сделанный во время осознанной паузы.
// ImageURL либо ссылка на объект в хранилище, либо data URL.
type Photo struct {
	ID          string     `json:"id"`
	WalkID      string     `json:"walkId,omitempty"`
	ImageURL    string     `json:"imageUrl"`
	PromptID    string     `json:"promptId"`
	PromptTitle string     `json:"promptTitle"`
	PromptType  PromptType `json:"promptType"`
	Timestamp   int64      `json:"timestamp"`
	Note        string     `json:"note,omitempty"`
	Location    *GeoPoint  `json:"location,omitempty"`
	Metadata    *Metadata  `json:"metadata,omitempty"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Metadata struct {
	FileSize    int64       `json:"fileSize"`
	ContentType string      `json:"contentType,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (p Photo) Validate() error {
	if p.ImageURL == "" {
		return fmt.Errorf("%w: imageUrl is required", ErrInvalidPhoto)
	}
	if p.PromptType != "" && !p.PromptType.Valid() {
		return fmt.Errorf("%w: prompt type %q", ErrInvalidPhoto, p.PromptType)
	}
	return nil
}

// UploadMetadata JSON-часть multipart запроса POST /storage/upload
type UploadMetadata struct {
	WalkID      string     `json:"walkId,omitempty"`
	PromptID    string     `json:"promptId,omitempty"`
	PromptTitle string     `json:"promptTitle,omitempty"`
	PromptType  PromptType `json:"promptType,omitempty"`
	Note        string     `json:"note,omitempty"`
	Timestamp   int64      `json:"timestamp,omitempty"`
	Location    *GeoPoint  `json:"location,omitempty"`
}

// Upload загружаемый файл изображения
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
	Meta        UploadMetadata
}

type UploadResult struct {
	URL     string `json:"url"`
	PhotoID string `json:"photoId"`
}
