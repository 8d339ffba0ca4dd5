package csv

import (
	"bufio"
	"io"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', '|'}

// Picks the delimiter that occurs most consistently across the first lines of the file, ignoring
// occurrences inside double-quoted fields. Falls back to ',' if no candidate occurs at all.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxRowsToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := newDelimiterCandidateList(delimitersToCheck)

	scanner := bufio.NewScanner(csvFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < maxRowsToCheck && scanner.Scan(); i++ {
		line := scanner.Text()
		if line == "" {
			continue
		}

		counts := countUnquoted(line, delimitersToCheck)
		for j := range candidates {
			candidates[j].updateCounts(counts[candidates[j].delimiter])
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, wrap.Error(err, "failed to scan CSV lines for field delimiter")
	}

	return candidates.getBestCandidate(), nil
}

func countUnquoted(line string, delimiters []rune) map[rune]int {
	counts := make(map[rune]int, len(delimiters))

	inQuotes := false
	for _, char := range line {
		if char == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, delimiter := range delimiters {
			if char == delimiter {
				counts[delimiter]++
			}
		}
	}

	return counts
}

type delimiterCandidate struct {
	delimiter    rune
	highestCount int
	lowestCount  int
}

func (candidate *delimiterCandidate) updateCounts(count int) {
	if candidate.highestCount == -1 || candidate.highestCount < count {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || candidate.lowestCount > count {
		candidate.lowestCount = count
	}
}

// A candidate that appears the same number of times on every line beats one that varies, and
// among equally consistent candidates the more frequent one wins.
func (candidate delimiterCandidate) betterThan(other delimiterCandidate) bool {
	if candidate.lowestCount <= 0 {
		return false
	}
	if other.lowestCount <= 0 {
		return true
	}

	consistent := candidate.highestCount == candidate.lowestCount
	otherConsistent := other.highestCount == other.lowestCount
	if consistent != otherConsistent {
		return consistent
	}

	return candidate.lowestCount > other.lowestCount
}

type delimiterCandidateList []delimiterCandidate

func newDelimiterCandidateList(delimitersToCheck []rune) delimiterCandidateList {
	list := make([]delimiterCandidate, 0, len(delimitersToCheck))

	for _, delimiter := range delimitersToCheck {
		list = append(
			list,
			delimiterCandidate{delimiter: delimiter, highestCount: -1, lowestCount: -1},
		)
	}

	return list
}

func (list delimiterCandidateList) getBestCandidate() rune {
	best := delimiterCandidate{delimiter: ',', highestCount: -1, lowestCount: -1}

	for _, candidate := range list {
		if candidate.betterThan(best) {
			best = candidate
		}
	}

	return best.delimiter
}
