// Package timezones serves the IANA zone list as a searchable option source.
//
// The same search backs two surfaces: Source plugs into an async select
// directly, and Handler answers the JSON shape EndpointSource reads
// ({"data":[{"value":...,"label":...}]}), so a form can point a field's
// endpoint at a mounted handler instead.
package timezones
