package playlist

import "github.com/franz/carolcast/internal/feed"

// IndexOf returns the position of the episode with id, or -1
func IndexOf(episodes []*feed.Episode, id string) int {
	for i, ep := range episodes {
		if ep.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the episode with id
func Find(episodes []*feed.Episode, id string) (*feed.Episode, bool) {
	if i := IndexOf(episodes, id); i >= 0 {
		return episodes[i], true
	}
	return nil, false
}

// Next returns the episode after id, wrapping to the first. An id not in the
// list yields the first episode.
func Next(episodes []*feed.Episode, id string) (*feed.Episode, bool) {
	if len(episodes) == 0 {
		return nil, false
	}
	i := IndexOf(episodes, id)
	return episodes[(i+1)%len(episodes)], true
}

// Previous returns the episode before id, wrapping to the last. An id not in
// the list yields the last episode.
func Previous(episodes []*feed.Episode, id string) (*feed.Episode, bool) {
	if len(episodes) == 0 {
		return nil, false
	}
	i := IndexOf(episodes, id)
	if i < 0 {
		i = 0
	}
	return episodes[(i-1+len(episodes))%len(episodes)], true
}
