package web

import (
	"log/slog"
	"net/http"

	"github.com/omarshaarawi/recapbot/internal/models"
)

type pageData struct {
	Creds  models.LeagueCredentials
	Mode   string
	Teams  []string
	Team   string
	Error  string
	Result *resultView
}

type resultView struct {
	ID             string
	Title          string
	Digest         string
	FailedSections []string
	Narrative      string
	NarrativeError string
}

func newResultView(res *models.Result) *resultView {
	view := &resultView{
		ID:        res.ID,
		Title:     res.Report.Title,
		Digest:    res.Report.String(),
		Narrative: res.Narrative,
	}
	for _, s := range res.Report.Failed() {
		view.FailedSections = append(view.FailedSections, s.Title+": "+s.Err.Error())
	}
	if res.NarrativeErr != nil {
		view.NarrativeError = res.NarrativeErr.Error()
	}
	return view
}

func formCredentials(r *http.Request) models.LeagueCredentials {
	return models.LeagueCredentials{
		LeagueID: r.PostFormValue("league_id"),
		Year:     r.PostFormValue("year"),
		SWID:     r.PostFormValue("swid"),
		ESPNS2:   r.PostFormValue("espn_s2"),
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	if data.Mode == "" {
		data.Mode = "recap"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.Error("Error rendering page", "error", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{Creds: models.LeagueCredentials{Year: defaultYear()}})
}

func (s *Server) handleLoadTeams(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageData{Error: "Could not read form."})
		return
	}

	data := pageData{Creds: formCredentials(r), Mode: r.PostFormValue("mode")}

	teams, err := s.svc.TeamNames(r.Context(), data.Creds)
	if err != nil {
		data.Error = "Error loading teams: " + err.Error()
		s.render(w, errorStatus(err), data)
		return
	}

	data.Teams = teams
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageData{Error: "Could not read form."})
		return
	}

	data := pageData{
		Creds: formCredentials(r),
		Mode:  r.PostFormValue("mode"),
		Team:  r.PostFormValue("team"),
		Teams: r.PostForm["teams"],
	}

	var (
		res *models.Result
		err error
	)
	switch data.Mode {
	case "analysis":
		res, err = s.svc.Analyze(r.Context(), data.Creds, data.Team)
	default:
		data.Mode = "recap"
		res, err = s.svc.Recap(r.Context(), data.Creds)
	}
	if err != nil {
		data.Error = "Error generating " + data.Mode + ": " + err.Error()
		s.render(w, errorStatus(err), data)
		return
	}

	data.Result = newResultView(res)
	s.render(w, http.StatusOK, data)
}
