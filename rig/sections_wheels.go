package rig

// parseWheelLine normalizes all five wheel-family sections to the
// shared WheelRec shape (spec §3 Wheel family, §9 Polymorphism). Layout
// differs only in how many ring radii/spring-damp pairs and mesh
// references trail the common node/physics prefix.
func (p *Parser) parseWheelLine(ev Event, variant WheelVariant) {
	fields := SplitFields(ev.Text)
	if len(fields) < 11 {
		p.diags.Add(ERROR, ev.Line, p.curModuleName, p.curSection, "", "malformed wheel line, too few fields")
		return
	}

	rec := &WheelRec{
		Line:        ev.Line,
		Variant:     variant,
		DetacherGrp: p.defaults.DetacherGroup,
	}

	i := 0
	next := func() string {
		if i >= len(fields) {
			return ""
		}
		v := fields[i]
		i++
		return v
	}
	nextFloat := func() float64 {
		v, _ := parseFloatLoose(next())
		return v
	}
	nextInt := func() int {
		v, _ := parseIntLoose(next())
		return v
	}

	switch variant {
	case WheelsV1:
		rec.Radius = nextFloat()
	case WheelsV2:
		rec.TyreRadius = nextFloat()
		rec.Radius = nextFloat() // rim radius
		rec.TwoRing = true
	case MeshWheels:
		rec.Radius = nextFloat()
	case MeshWheels2, FlexBodyWheels:
		rec.TyreRadius = nextFloat()
		rec.Radius = nextFloat() // rim radius
		rec.TwoRing = true
	}

	rec.NumRays = nextInt()
	rec.Axis1 = p.wheelNodeId(next(), ev.Line)
	rec.Axis2 = p.wheelNodeId(next(), ev.Line)

	rigTok := next()
	if rigTok == "9999" || rigTok == "-1" {
		rec.HasRigidity = false
	} else {
		rec.Rigidity = ParseNodeId(rigTok, ev.Line, p.curModuleName, p.curSection, &p.diags)
		rec.HasRigidity = true
	}

	switch nextInt() {
	case 0:
		rec.Braking = BrakeNone
	case 1:
		rec.Braking = BrakeYes
	case 2:
		rec.Braking = BrakeFootOnly
	case 3:
		rec.Braking = BrakeDirLeft
	case 4:
		rec.Braking = BrakeDirRight
	}

	switch nextInt() {
	case 1:
		rec.Propulsion = PropForward
	case 2:
		rec.Propulsion = PropBackward
	default:
		rec.Propulsion = PropNone
	}

	rec.ArmNode = p.wheelNodeId(next(), ev.Line)
	rec.Mass = nextFloat()

	if rec.TwoRing {
		rec.SpringRim = nextFloat()
		rec.DampRim = nextFloat()
		rec.SpringTread = nextFloat()
		rec.DampTread = nextFloat()
	} else {
		rec.SpringTyre = nextFloat()
		rec.DampTyre = nextFloat()
	}

	switch variant {
	case WheelsV1, WheelsV2:
		rec.FaceMaterial = next()
		rec.BandMaterial = next()
	case MeshWheels, MeshWheels2:
		next() // side (l/r), wheel-visual orientation; not modeled beyond mesh lookup
		rec.FaceMaterial = next()
		rec.BandMaterial = next()
	case FlexBodyWheels:
		next() // side
		rec.FaceMaterial = next()
		rec.BandMaterial = next()
	}

	p.curModule.Wheels = append(p.curModule.Wheels, rec)
}

func (p *Parser) wheelNodeId(tok string, line int) NodeId {
	if tok == "" {
		return NodeId{}
	}
	return ParseNodeId(tok, line, p.curModuleName, p.curSection, &p.diags)
}
