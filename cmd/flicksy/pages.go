package main

import (
	"fmt"

	"flicksy/pkg/models"
)

// Page shells carry only the anchors the widgets look for.

const homeShell = `<!DOCTYPE html><html><body>
<header><div class="relative">
<input type="text" class="search-input" placeholder="Search movies, shows, people...">
<div id="search-results" class="hidden absolute w-full bg-gray-900 rounded-lg shadow-lg z-50"></div>
</div></header>
<main id="outside"></main>
</body></html>`

const watchlistShell = `<!DOCTYPE html><html><body>
<main><div id="watchlist-container" class="watchlist-grid"><p class="text-gray-400">Loading...</p></div></main>
</body></html>`

func idAttr(key models.MediaKey) string {
	if key.MediaType == models.MediaTV {
		return "data-tv-id"
	}
	return "data-movie-id"
}

func buttonShell(key models.MediaKey, action string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body>
<button class="watchlist-btn bg-transparent" data-action=%q %s="%d"><i class="ri-bookmark-line"></i> Watchlist</button>
</body></html>`, action, idAttr(key), key.TMDBID)
}

func detailsShell(key models.MediaKey) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body>
<button class="watchlist-btn bg-transparent" data-action="add" %s="%d"><i class="ri-bookmark-line"></i> Watchlist</button>
<section><h2>Cast</h2><div id="cast-container" class="flex gap-6"><p class="text-gray-400">Loading cast...</p></div></section>
<section><h2>Where to watch</h2><div id="platform-container" class="flex flex-wrap gap-4"><p class="text-gray-400">Loading...</p></div></section>
<section>
<div class="rating">
<input type="radio" name="rating" id="star5" value="5"><input type="radio" name="rating" id="star4" value="4">
<input type="radio" name="rating" id="star3" value="3"><input type="radio" name="rating" id="star2" value="2">
<input type="radio" name="rating" id="star1" value="1">
</div>
<textarea id="reviewText" rows="4"></textarea>
<button id="submitReviewBtn" type="button">Post Review</button>
<div id="review-message" class="mt-4"></div>
</section>
<section class="relative">
<button id="scroll-left-btn"><i class="ri-arrow-left-s-line"></i></button>
<div id="reviews-container" class="flex overflow-x-auto space-x-6"><p class="text-gray-400">No reviews yet. Be the first!</p></div>
<button id="scroll-right-btn"><i class="ri-arrow-right-s-line"></i></button>
</section>
</body></html>`, idAttr(key), key.TMDBID)
}
