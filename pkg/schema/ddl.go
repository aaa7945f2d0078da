package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	for _, c := range constraints {
		columns = append(columns, "    "+c)
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n)",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// ColumnNames returns the column names of a model in declaration order.
func ColumnNames(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

func (Region) TableDDL() string  { return generateDDL(Region{}, RegionsTable) }
func (Region) TableName() string { return RegionsTable }

func (Constellation) TableDDL() string {
	return generateDDL(Constellation{}, ConstellationsTable)
}
func (Constellation) TableName() string { return ConstellationsTable }

func (SolarSystem) TableDDL() string  { return generateDDL(SolarSystem{}, SolarSystemsTable) }
func (SolarSystem) TableName() string { return SolarSystemsTable }

func (Jump) TableDDL() string {
	return generateDDL(Jump{}, JumpsTable, "PRIMARY KEY (fromSystemId, toSystemId)")
}
func (Jump) TableName() string { return JumpsTable }

func (Planet) TableDDL() string  { return generateDDL(Planet{}, PlanetsTable) }
func (Planet) TableName() string { return PlanetsTable }

func (Moon) TableDDL() string  { return generateDDL(Moon{}, MoonsTable) }
func (Moon) TableName() string { return MoonsTable }

func (NpcStation) TableDDL() string  { return generateDDL(NpcStation{}, NpcStationsTable) }
func (NpcStation) TableName() string { return NpcStationsTable }

func (LegacySystem) TableDDL() string  { return generateDDL(LegacySystem{}, "mapSolarSystems") }
func (LegacySystem) TableName() string { return "mapSolarSystems" }

func (LegacyJump) TableDDL() string  { return generateDDL(LegacyJump{}, "mapSolarSystemJumps") }
func (LegacyJump) TableName() string { return "mapSolarSystemJumps" }

// ModernModels returns the canonical modern layout in write order.
// NpcStations is left out, it is optional in real releases.
func ModernModels() []DDLGenerator {
	return []DDLGenerator{
		Region{},
		Constellation{},
		SolarSystem{},
		Jump{},
		Planet{},
		Moon{},
	}
}

// LegacyModels returns the older map export layout.
func LegacyModels() []DDLGenerator {
	return []DDLGenerator{
		LegacySystem{},
		LegacyJump{},
	}
}
