package model

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPositions(t *testing.T) {
	Convey("Given the declared positions", t, func() {
		Convey("Then each is known", func() {
			for _, p := range KnownPositions() {
				So(p.IsKnown(), ShouldBeTrue)
			}
		})

		Convey("Then a typo is not", func() {
			So(Position("gaurdOne").IsKnown(), ShouldBeFalse)
		})
	})
}

func TestDates(t *testing.T) {
	Convey("Given date helpers", t, func() {
		Convey("When parsing a calendar day", func() {
			d, err := ParseDate("2022-10-18")

			Convey("Then it is UTC midnight", func() {
				So(err, ShouldBeNil)
				So(d, ShouldEqual, time.Date(2022, 10, 18, 0, 0, 0, 0, time.UTC))
				So(FormatDate(d), ShouldEqual, "2022-10-18")
			})
		})

		Convey("When parsing garbage", func() {
			_, err := ParseDate("18/10/2022")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(func() { MustDate("nope") }, ShouldPanic)
			})
		})

		Convey("Then Day drops the clock", func() {
			ts := time.Date(2022, 10, 18, 23, 59, 1, 5, time.UTC)
			So(Day(ts), ShouldEqual, MustDate("2022-10-18"))
			So(FormatDate(time.Time{}), ShouldEqual, "")
		})
	})
}

func TestTeamAddTransaction(t *testing.T) {
	Convey("Given a team without transactions", t, func() {
		team := Team{ID: "t1"}

		Convey("When a transaction is added", func() {
			team.AddTransaction(Transaction{Position: GuardTwo, Date: MustDate("2022-10-22"), Player: Player{ID: "gtt"}})
			team.AddTransaction(Transaction{Position: Center, Date: MustDate("2022-10-25"), Player: Player{ID: "c2"}})

			Convey("Then the log keeps insertion order", func() {
				So(team.Transactions, ShouldHaveLength, 2)
				So(team.Transactions[0].Player.ID, ShouldEqual, "gtt")
				So(team.Transactions[1].Position, ShouldEqual, Center)
			})
		})
	})

	Convey("Given a game log entry", t, func() {
		e := GameLogEntry{Stats: map[string]float64{"points": 20}}

		Convey("Then missing categories read as zero", func() {
			So(e.Stat("points"), ShouldEqual, 20)
			So(e.Stat("blocks"), ShouldEqual, 0)
		})
	})
}

func TestEntryJSON(t *testing.T) {
	Convey("Given log entries", t, func() {
		played := GameLogEntry{Rank: 3, Date: MustDate("2022-10-20"), Stats: map[string]float64{"points": 12}}
		missed := InactiveGameLogEntry{Rank: 2, Date: MustDate("2022-10-19"), Reason: "injury"}

		Convey("When encoded", func() {
			p, err := played.MarshalJSON()
			So(err, ShouldBeNil)
			m, err := missed.MarshalJSON()
			So(err, ShouldBeNil)

			Convey("Then dates are calendar days", func() {
				So(string(p), ShouldEqual, `{"rank":3,"date":"2022-10-20","stats":{"points":12}}`)
				So(string(m), ShouldEqual, `{"rank":2,"date":"2022-10-19","reason":"injury"}`)
			})
		})
	})
}
