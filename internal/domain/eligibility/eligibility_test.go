package eligibility_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/pointchart/internal/domain/eligibility"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRules(t *testing.T) {
	resorts := []string{"bay_lake_tower", "cabins_fort_wilderness", "disneyland_hotel", "polynesian", "riviera"}

	Convey("Given the default rules", t, func() {
		r := eligibility.DefaultRules()
		So(r.Restricted(), ShouldResemble, []string{"cabins_fort_wilderness", "disneyland_hotel", "riviera"})

		Convey("Direct contracts may book every resort", func() {
			So(r.Filter("polynesian", eligibility.Direct, resorts), ShouldResemble, resorts)
			So(r.Filter("riviera", eligibility.Direct, resorts), ShouldResemble, resorts)
			So(r.Filter("riviera", "", resorts), ShouldResemble, resorts)
		})

		Convey("Resale at an unrestricted resort excludes restricted resorts", func() {
			So(r.Filter("polynesian", eligibility.Resale, resorts), ShouldResemble, []string{"bay_lake_tower", "polynesian"})
		})

		Convey("Resale at a restricted resort is home only", func() {
			So(r.Filter("riviera", eligibility.Resale, resorts), ShouldResemble, []string{"riviera"})
			So(r.Filter("disneyland_hotel", eligibility.Resale, resorts), ShouldResemble, []string{"disneyland_hotel"})
		})

		Convey("Check explains an ineligible resort", func() {
			So(r.Check("polynesian", eligibility.Resale, "polynesian"), ShouldBeNil)
			err := r.Check("polynesian", eligibility.Resale, "riviera")
			So(errors.Is(err, eligibility.ErrIneligibleResort), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "resale at polynesian")
		})
	})

	Convey("Given configured rules", t, func() {
		r := eligibility.NewRules([]string{" polynesian ", ""})
		So(r.Restricted(), ShouldResemble, []string{"polynesian"})
		So(r.Eligible("bay_lake_tower", eligibility.Resale, "riviera"), ShouldBeTrue)
		So(r.Eligible("bay_lake_tower", eligibility.Resale, "polynesian"), ShouldBeFalse)
	})
}

func TestPurchaseType(t *testing.T) {
	Convey("Purchase types parse case-insensitively with direct as default", t, func() {
		pt, err := eligibility.ParsePurchaseType("Resale")
		So(err, ShouldBeNil)
		So(pt, ShouldEqual, eligibility.Resale)
		pt, err = eligibility.ParsePurchaseType("")
		So(err, ShouldBeNil)
		So(pt, ShouldEqual, eligibility.Direct)
	})

	Convey("Unknown purchase types fail to decode", t, func() {
		var v struct {
			PT eligibility.PurchaseType `json:"purchase_type"`
		}
		err := json.Unmarshal([]byte(`{"purchase_type":"gift"}`), &v)
		So(errors.Is(err, eligibility.ErrUnknownPurchaseType), ShouldBeTrue)
		So(json.Unmarshal([]byte(`{"purchase_type":"direct"}`), &v), ShouldBeNil)
		So(v.PT, ShouldEqual, eligibility.Direct)
	})
}
