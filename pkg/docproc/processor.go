package docproc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"course-rag-be/internal/entity"
)

var lessonHeaderRe = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.+)$`)

// ProcessedDocument is the parse output of one course document: the catalog
// entry plus its ordered, overlapping content chunks (embeddings unset).
type ProcessedDocument struct {
	Course entity.Course
	Chunks []*entity.CourseChunk
}

// Processor parses course documents of the form:
//
//	Course Title: <title>
//	Course Link: <url>
//	Course Instructor: <name>
//
//	Lesson 0: Introduction
//	Lesson Link: <url>
//	<content...>
//
// A document with a malformed header still parses; the filename stands in
// for the missing title so one bad file never aborts a corpus load.
type Processor struct {
	chunkSize int
	overlap   int
}

func NewProcessor(chunkSize, overlap int) *Processor {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Processor{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

func (p *Processor) ProcessFile(path string) (*ProcessedDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course document: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read course document: %w", err)
	}

	return p.Process(filepath.Base(path), sb.String()), nil
}

// Process parses a document already in memory. filename is the fallback
// title when the header is malformed.
func (p *Processor) Process(filename, content string) *ProcessedDocument {
	lines := strings.Split(content, "\n")

	course := entity.Course{
		Title: strings.TrimSuffix(filename, filepath.Ext(filename)),
	}

	// 3-line header: title, link, instructor. Each line is optional but
	// positional; a missing prefix just leaves the field empty.
	bodyStart := 0
	if len(lines) > 0 {
		if title, ok := headerValue(lines[0], "Course Title:"); ok {
			course.Title = title
			bodyStart = 1
		}
	}
	if len(lines) > bodyStart {
		if link, ok := headerValue(lines[bodyStart], "Course Link:"); ok {
			course.Link = link
			bodyStart++
		}
	}
	if len(lines) > bodyStart {
		if instructor, ok := headerValue(lines[bodyStart], "Course Instructor:"); ok {
			course.Instructor = instructor
			bodyStart++
		}
	}

	type lessonBlock struct {
		number  *int
		content strings.Builder
	}

	// Content before the first lesson marker belongs to no lesson.
	current := &lessonBlock{}
	blocks := []*lessonBlock{current}

	for i := bodyStart; i < len(lines); i++ {
		line := lines[i]

		if m := lessonHeaderRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			number, _ := strconv.Atoi(m[1])
			title := strings.TrimSpace(m[2])

			lesson := entity.Lesson{Number: number, Title: title}
			// Optional "Lesson Link:" on the line right after the marker.
			if i+1 < len(lines) {
				if link, ok := headerValue(lines[i+1], "Lesson Link:"); ok {
					lesson.Link = link
					i++
				}
			}
			course.Lessons = append(course.Lessons, lesson)

			num := number
			current = &lessonBlock{number: &num}
			blocks = append(blocks, current)
			continue
		}

		current.content.WriteString(line)
		current.content.WriteString("\n")
	}

	doc := &ProcessedDocument{Course: course}
	chunkIndex := 0
	for _, block := range blocks {
		text := strings.TrimSpace(block.content.String())
		if text == "" {
			continue
		}
		for _, piece := range SplitText(text, p.chunkSize, p.overlap) {
			doc.Chunks = append(doc.Chunks, &entity.CourseChunk{
				Content:      piece,
				CourseTitle:  course.Title,
				LessonNumber: block.number,
				ChunkIndex:   chunkIndex,
			})
			chunkIndex++
		}
	}
	return doc
}

func headerValue(line, prefix string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
}
