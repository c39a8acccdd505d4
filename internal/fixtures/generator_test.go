package fixtures_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/fixtures"
	"github.com/okian/courtside/pkg/logger"
)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()
		cfg := fixtures.NewConfig(fixtures.WithSeed(42), fixtures.WithTeams(4), fixtures.WithSeasonDays(30))

		Convey("When generating twice with the same seed", func() {
			a := fixtures.Generate(ctx, cfg)
			b := fixtures.Generate(ctx, cfg)

			Convey("Then the leagues are identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When generating with another seed", func() {
			a := fixtures.Generate(ctx, cfg)
			other := cfg
			other.Seed = 43
			b := fixtures.Generate(ctx, other)

			Convey("Then identities differ", func() {
				So(a.Teams[0].ID, ShouldNotEqual, b.Teams[0].ID)
			})
		})

		Convey("When inspecting a generated league", func() {
			league := fixtures.Generate(ctx, cfg)

			Convey("Then every team has every position and its transactions", func() {
				So(league.Teams, ShouldHaveLength, 4)
				for _, team := range league.Teams {
					So(team.Players, ShouldHaveLength, len(cfg.Rules.AllPositions()))
					So(team.Transactions, ShouldHaveLength, cfg.Transactions)
					for _, tx := range team.Transactions {
						So(tx.Date.After(league.StartDate), ShouldBeTrue)
					}
				}
			})

			Convey("Then ranks are unique and grow with game date", func() {
				for _, team := range league.Teams {
					for _, p := range team.Players {
						byRank := map[int]bool{}
						for _, e := range p.GameLog {
							So(byRank[e.Rank], ShouldBeFalse)
							byRank[e.Rank] = true
						}
						for _, e := range p.InactiveGameLog {
							So(byRank[e.Rank], ShouldBeFalse)
							byRank[e.Rank] = true
						}
						for i := 1; i < len(p.GameLog); i++ {
							So(p.GameLog[i].Rank, ShouldBeGreaterThan, p.GameLog[i-1].Rank)
							So(p.GameLog[i].Date.After(p.GameLog[i-1].Date), ShouldBeTrue)
						}
					}
				}
			})

			Convey("Then box scores are internally consistent", func() {
				for _, e := range league.Teams[0].Players[model.GuardOne].GameLog {
					So(e.Stat("fieldGoals"), ShouldBeLessThanOrEqualTo, e.Stat("fieldGoalAttempts"))
					So(e.Stat("threePointers"), ShouldBeLessThanOrEqualTo, e.Stat("fieldGoals"))
					So(e.Stat("freeThrows"), ShouldBeLessThanOrEqualTo, e.Stat("freeThrowAttempts"))
					So(e.Stat("points"), ShouldEqual, 2*e.Stat("fieldGoals")+e.Stat("threePointers")+e.Stat("freeThrows"))
				}
			})
		})

		Convey("When injuries are disabled", func() {
			league := fixtures.Generate(ctx, fixtures.NewConfig(fixtures.WithInjuryRate(0), fixtures.WithTeams(1), fixtures.WithTransactions(0)))

			Convey("Then nobody misses a game", func() {
				for _, p := range league.Teams[0].Players {
					So(p.InactiveGameLog, ShouldBeEmpty)
					So(p.GameLog, ShouldNotBeEmpty)
				}
				So(league.Teams[0].Transactions, ShouldBeEmpty)
			})
		})
	})
}
