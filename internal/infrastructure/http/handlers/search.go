package handlers

import (
	"net/http"

	"github.com/Skye-project/phantom-mask/internal/application/use_cases"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/http/response"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

type SearchHandler struct {
	queries *use_cases.QueryUseCase
	log     *logger.Logger
}

func NewSearchHandler(queries *use_cases.QueryUseCase, log *logger.Logger) *SearchHandler {
	return &SearchHandler{
		queries: queries,
		log:     log,
	}
}

type SearchHitResponse struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Relevance float64 `json:"relevance"`
}

func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	hits, err := h.queries.Search(r.Context(), keyword)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	result := make([]SearchHitResponse, 0, len(hits))
	for _, hit := range hits {
		result = append(result, SearchHitResponse{
			Type:      hit.Type,
			Name:      hit.Name,
			Relevance: hit.Relevance,
		})
	}

	response.WriteSuccess(w, result)
}
