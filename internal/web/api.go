package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/omarshaarawi/recapbot/internal/models"
)

var ErrCouldNotParseBody = errors.New("could not parse request body")

type httpResp struct {
	Status  int         `json:"status"`
	IsError bool        `json:"is_error"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type apiRequest struct {
	models.LeagueCredentials
	Team string `json:"team"`
}

type sectionJSON struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
	Error string   `json:"error,omitempty"`
}

type resultJSON struct {
	ID             string        `json:"id"`
	Mode           string        `json:"mode"`
	League         string        `json:"league"`
	Team           string        `json:"team,omitempty"`
	Digest         string        `json:"digest"`
	Sections       []sectionJSON `json:"sections"`
	WeakSpots      []string      `json:"weak_spots,omitempty"`
	Narrative      string        `json:"narrative,omitempty"`
	NarrativeError string        `json:"narrative_error,omitempty"`
}

func newResultJSON(res *models.Result) resultJSON {
	out := resultJSON{
		ID:        res.ID,
		Mode:      res.Mode,
		League:    res.LeagueName,
		Team:      res.TeamName,
		Digest:    res.Report.String(),
		Narrative: res.Narrative,
	}
	for _, s := range res.Report.Sections {
		sj := sectionJSON{Title: s.Title, Lines: s.Lines}
		if s.Err != nil {
			sj.Error = s.Err.Error()
		}
		out.Sections = append(out.Sections, sj)
	}
	for _, p := range res.WeakSpots {
		out.WeakSpots = append(out.WeakSpots, p.Name)
	}
	if res.NarrativeErr != nil {
		out.NarrativeError = res.NarrativeErr.Error()
	}
	return out
}

func getBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

func sendResponse(rw http.ResponseWriter, resp httpResp) {
	out, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Error marshalling response", "error", err)
		rw.Header().Set("Content-Type", "application/json; charset=utf-8")
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write([]byte(`{"status": 500, "is_error": true, "error": "could not marshal response"}`))
		return
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(resp.Status)
	rw.Write(out)
}

func sendError(rw http.ResponseWriter, status int, err error) {
	sendResponse(rw, httpResp{Status: status, IsError: true, Error: err.Error()})
}

func (s *Server) apiTeams(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := getBody(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}

	teams, err := s.svc.TeamNames(r.Context(), req.LeagueCredentials)
	if err != nil {
		sendError(w, errorStatus(err), err)
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string][]string{"teams": teams}})
}

func (s *Server) apiRecap(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := getBody(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.svc.Recap(r.Context(), req.LeagueCredentials)
	if err != nil {
		sendError(w, errorStatus(err), err)
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: newResultJSON(res)})
}

func (s *Server) apiAnalysis(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := getBody(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.svc.Analyze(r.Context(), req.LeagueCredentials, req.Team)
	if err != nil {
		sendError(w, errorStatus(err), err)
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: newResultJSON(res)})
}
