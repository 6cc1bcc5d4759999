package render

const templates = `
{{define "message"}}<p class="{{.Class}}">{{.Text}}</p>{{end}}

{{define "watchlist_card"}}<div class="watchlist-item" id="{{.Key.CardID}}">
<a href="{{.Key.Path}}">{{with posterURL .PosterPath}}<img src="{{.}}" class="watchlist-poster" alt="Poster for {{$.DisplayTitle}}">{{else}}<img class="watchlist-poster" alt="Poster for {{.DisplayTitle}}">{{end}}</a>
<div class="watchlist-overlay">
<div>
<div class="overlay-title">{{.DisplayTitle}} ({{year .AirDate}})</div>
<div class="star-rating"><i class="ri-star-fill text-yellow-400"></i> {{vote .VoteAverage}}</div>
<div class="overlay-desc">{{excerpt .Overview}}</div>
</div>
<div class="overlay-buttons">
<a href="{{.Key.Path}}" class="watch-btn">Details</a>
{{if eq .MediaType "movie"}}<button class="remove-btn watchlist-btn" data-action="remove" data-movie-id="{{.TMDBID}}">{{else}}<button class="remove-btn watchlist-btn" data-action="remove" data-tv-id="{{.TMDBID}}">{{end}}<i class="ri-delete-bin-line"></i> Remove</button>
</div>
</div>
</div>{{end}}

{{define "search_header"}}<h3 class="text-gray-300 font-bold px-4 pt-2 text-sm border-b border-gray-700 pb-2">{{.}}</h3>{{end}}

{{define "search_item"}}<a href="{{.Href}}" class="flex items-center p-2 hover:bg-gray-800 cursor-pointer">
<img src="{{.Image}}" class="w-10 h-14 object-cover rounded mr-3 flex-shrink-0" alt="{{.Name}}">
<span class="text-white text-sm">{{.Name}}</span>
</a>{{end}}

{{define "cast_card"}}<a href="/person/{{.ID}}" class="text-current no-underline">
<div class="flex flex-col items-center transform transition-transform hover:scale-105">
<img src="{{profileURL .ProfilePath}}" alt="{{.Name}}" class="cast-img w-24 h-24 md:w-32 md:h-32 rounded-full object-cover shadow-lg border-2 border-purple-500/50">
<p class="mt-3 font-bold text-white">{{.Name}}</p>
<p class="text-sm text-gray-400 text-center">{{.Character}}</p>
</div>
</a>{{end}}

{{define "provider_badge"}}<div class="flex items-center gap-3 p-3 rounded-xl bg-purple-600/20 border-2 border-purple-500/30">
<img src="{{logoURL .LogoPath}}" alt="{{.ProviderName}}" class="w-8 h-8 rounded-md">
<span class="font-semibold text-lg">{{.ProviderName}}</span>
</div>{{end}}

{{define "review_card"}}<div class="glass-panel p-4 flex items-start space-x-4 w-96 flex-shrink-0">
<div class="flex-shrink-0">
<div class="w-12 h-12 rounded-full bg-purple-800 flex items-center justify-center font-bold text-xl">{{initial .Author}}</div>
</div>
<div class="flex-1 min-w-0">
<div class="flex items-center space-x-3">
<span class="font-semibold">{{.Author}}</span>
<span class="text-sm text-gray-400">via Flicksy</span>
</div>
<div class="flex text-yellow-400 mt-1">{{range stars .Rating}}<i class="ri-star-fill {{if .}}text-yellow-400{{else}}text-gray-600{{end}}"></i>{{end}}</div>
<p class="text-gray-300 mt-2 text-sm leading-relaxed break-words">{{.Content}}</p>
</div>
</div>{{end}}
`

// Button and inline-control markup. Static, so not templated.
const (
	AddedLabel     = `<i class="ri-check-line"></i> Added`
	WatchlistLabel = `<i class="ri-bookmark-line"></i> Watchlist`
	InlineAdded    = `<div class="w-5 h-5 flex items-center justify-center mr-2"><i class="ri-check-line"></i></div><span>Added</span>`
)
