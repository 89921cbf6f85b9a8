package handler

import (
	"net/http"

	"github.com/Alan-Collins/SpellTower-solver/internal/api/response"
	"github.com/Alan-Collins/SpellTower-solver/internal/services/dictionary"
)

// DictionaryHandler reports on the loaded word list
type DictionaryHandler struct {
	dictionary dictionary.ServiceInterface
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(dictionaryService dictionary.ServiceInterface) *DictionaryHandler {
	return &DictionaryHandler{dictionary: dictionaryService}
}

// Get handles GET /api/v1/dictionary
func (h *DictionaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Dictionary{
		Loaded:    h.dictionary.IsLoaded(),
		WordCount: h.dictionary.WordCount(),
	})
}
