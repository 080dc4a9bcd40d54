package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/summarybot/src/data"
)

const maxRunsPage = 100

// RunLister returns recent run metadata.
type RunLister interface {
	Recent(guildID, channelID string, limit int) ([]data.SummaryRun, error)
}

type Runs struct {
	store RunLister
}

func NewRuns(store RunLister) Runs { return Runs{store: store} }

// Recent lists the newest runs for a channel.
func (r Runs) Recent(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid limit"})
			return
		}
		limit = n
	}
	if limit > maxRunsPage {
		limit = maxRunsPage
	}

	runs, err := r.store.Recent(c.Param("guild"), c.Param("channel"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
