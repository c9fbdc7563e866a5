package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/pkg/formatting"
)

const pdfContentType = "application/pdf"

// AttachmentKey returns the blob key a candidate's CV is stored under.
func AttachmentKey(batchID, candidateID uuid.UUID) string {
	return fmt.Sprintf("cvs/%s/%s.pdf", batchID, candidateID)
}

// storeAttachment uploads the submitted CV file. A nil result with a nil
// error means no file was submitted.
func (p *Pipeline) storeAttachment(
	ctx context.Context,
	batchID, candidateID uuid.UUID,
	sub Submission,
	logger *slog.Logger,
) (*candidates.Attachment, error) {
	if len(sub.CVFile) == 0 {
		return nil, nil
	}

	contentType := detectContentType(sub.CVFile)
	key := AttachmentKey(batchID, candidateID)

	if err := p.storage.Put(ctx, key, sub.CVFile, contentType); err != nil {
		return nil, fmt.Errorf("store cv: %w", err)
	}
	logger.Debug("cv stored", "key", key, "size", formatting.FormatBytes(int64(len(sub.CVFile)), 1))

	return &candidates.Attachment{
		Key:       key,
		FileName:  attachmentName(sub),
		Size:      int64(len(sub.CVFile)),
		MimeType:  contentType,
		PageCount: pageCount(logger, sub.CVFile, contentType),
	}, nil
}

func detectContentType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func pageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != pdfContentType {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to read cv page count", "error", err)
		return nil
	}
	return &count
}

func attachmentName(sub Submission) string {
	if name := filepath.Base(strings.TrimSpace(sub.CVFileName)); name != "." && name != "/" && name != "" {
		return name
	}
	return strings.TrimSpace(sub.Name) + "_CV.pdf"
}
