package models

import "testing"

func TestDeepLinkRoute(t *testing.T) {
	link := DeepLink{Page: "PostPage", ParameterName: "postId", DestinationID: "42"}
	route := link.Route()
	if route["initialPageName"] != "PostPage" {
		t.Fatalf("initialPageName = %q", route["initialPageName"])
	}
	if route["parameterData"] != `{"postId":"42"}` {
		t.Fatalf("parameterData = %q", route["parameterData"])
	}

	pageOnly := DeepLink{Page: "Home", DestinationID: "42"}
	route = pageOnly.Route()
	if _, ok := route["parameterData"]; ok || route["initialPageName"] != "Home" {
		t.Fatalf("page-only route = %v", route)
	}

	if (DeepLink{}).Route() != nil {
		t.Fatalf("empty link should have nil route")
	}
}

func TestDeepLinkRouteURI(t *testing.T) {
	cases := []struct {
		link DeepLink
		want string
	}{
		{DeepLink{Page: "PostPage", DestinationID: "42"}, "myapp://app/PostPage/42"},
		{DeepLink{Page: "Home"}, "myapp://app/Home"},
		{DeepLink{DestinationID: "42"}, ""},
	}
	for _, c := range cases {
		if got := c.link.RouteURI("myapp://app"); got != c.want {
			t.Fatalf("RouteURI(%+v) = %q, want %q", c.link, got, c.want)
		}
	}
}
