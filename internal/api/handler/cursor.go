package handler

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

// DecodeJobCursor parses an opaque page token; an empty token means the first page
func DecodeJobCursor(cursorStr string) (*domain.JobCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	decodedParts := strings.Split(string(decoded), "|")
	if len(decodedParts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	postedAt, err := strconv.ParseInt(decodedParts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid posted_at in cursor: %w", err)
	}

	jobID, err := strconv.ParseInt(decodedParts[1], 10, 64)
	if err != nil || jobID <= 0 {
		return nil, fmt.Errorf("invalid job id in cursor")
	}

	return &domain.JobCursor{
		PostedAt: time.Unix(0, postedAt).UTC(),
		JobID:    jobID,
	}, nil
}

// EncodeJobCursor renders the cursor as base64("<posted_at unix nanos>|<job id>")
func EncodeJobCursor(cursor *domain.JobCursor) string {
	cs := fmt.Sprintf("%d|%d", cursor.PostedAt.UnixNano(), cursor.JobID)
	return base64.URLEncoding.EncodeToString([]byte(cs))
}
